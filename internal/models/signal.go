package models

// Signal is a single scored dimension of the analysis. Scores are bounded to
// [-2, +2] in 0.5 increments; missing input produces a neutral score with an
// explanatory label rather than an error.
type Signal struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Score       float64                `json:"score"`
	Label       string                 `json:"label"`
	Explanation string                 `json:"explanation"`
	Components  map[string]interface{} `json:"components,omitempty"`
}

// Signal identifiers. History entries key their per-signal scores by these.
const (
	SignalTrend     = "trend"
	SignalValuation = "valuation"
	SignalSentiment = "sentiment"
	SignalOwnership = "ownership"
	SignalRisk      = "risk"
	SignalThesis    = "thesis"
)

// ConvergenceResult is the composite verdict across all available signals.
type ConvergenceResult struct {
	CompositeScore float64 `json:"composite_score"`
	Label          string  `json:"label"`
	Summary        string  `json:"summary"`
	Confidence     string  `json:"confidence"` // low, moderate, high
	Dissenting     bool    `json:"dissenting"`
	SignalCount    int     `json:"signal_count"`
	BullishCount   int     `json:"bullish_count"`
	BearishCount   int     `json:"bearish_count"`
	NeutralCount   int     `json:"neutral_count"`
}
