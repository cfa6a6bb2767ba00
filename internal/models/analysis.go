package models

import "time"

// AnalysisResult is the full response for one analyzed ticker.
type AnalysisResult struct {
	ID           string    `json:"id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	Sector       string    `json:"sector,omitempty"`
	AssetType    AssetKind `json:"asset_type"`
	CurrentPrice float64   `json:"current_price"`

	// PriceHistory is trimmed to the most recent bars for charting; scoring
	// uses the full series internally.
	PriceHistory []PriceBar `json:"price_history"`

	Signals     []Signal          `json:"signals"`
	Convergence ConvergenceResult `json:"convergence"`

	// Overlap is only present for funds with resolvable holdings.
	Overlap []OverlapRecord `json:"overlap,omitempty"`

	// Thesis is only present for tickers in the thesis universe.
	Thesis *ThesisMembership `json:"thesis,omitempty"`

	// Provenance records where each data category came from, keyed by
	// category name (prices, overview, analyst, ownership, risk).
	Provenance    map[string]Provenance `json:"provenance"`
	UsingMockData bool                  `json:"using_mock_data"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}
