package models

// ThesisTier is one tier of the investment thesis reference data.
// Tier 0 is the avoid list.
type ThesisTier struct {
	Tier      int      `json:"tier" yaml:"tier"`
	Name      string   `json:"name" yaml:"name"`
	Priority  string   `json:"priority" yaml:"priority"`
	Rationale string   `json:"rationale" yaml:"rationale"`
	Tickers   []string `json:"tickers" yaml:"tickers"`
}

// ThesisMembership describes where a single ticker sits in the thesis.
type ThesisMembership struct {
	Ticker    string `json:"ticker"`
	Tier      int    `json:"tier"` // 0 when Avoid is true
	TierName  string `json:"tier_name"`
	Priority  string `json:"priority"`
	Rationale string `json:"rationale"`
	Avoid     bool   `json:"avoid"`
}
