package models

// SharedHolding is a position held by both funds in an overlap comparison.
type SharedHolding struct {
	Ticker         string  `json:"ticker"`
	WeightInTarget float64 `json:"weight_in_target"`
	WeightInOther  float64 `json:"weight_in_other"`
}

// OverlapRecord summarizes holding overlap between the analyzed fund and one
// other fund in the universe.
type OverlapRecord struct {
	Ticker         string          `json:"ticker"`
	Name           string          `json:"name"`
	SharedCount    int             `json:"shared_count"`
	OverlapPct     float64         `json:"overlap_pct"`
	SharedHoldings []SharedHolding `json:"shared_holdings"`
}
