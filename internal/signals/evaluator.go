package signals

import "github.com/ternarybob/conflux/internal/models"

// directionalLabel maps a score on the [-2, 2] grid to its sentiment label
func directionalLabel(score float64) string {
	switch {
	case score >= 1.5:
		return "Strong Bullish"
	case score >= 0.5:
		return "Bullish"
	case score > -0.5:
		return "Neutral"
	case score > -1.5:
		return "Bearish"
	default:
		return "Strong Bearish"
	}
}

// Input carries everything the evaluators need for one asset. Pointer fields
// are nil when the acquisition layer could not source that category.
type Input struct {
	Ticker    string
	Kind      models.AssetKind
	Bars      []models.PriceBar
	Overview  *models.Overview
	Analyst   *models.AnalystSnapshot
	Ownership *models.OwnershipActivity
	Risk      *models.RiskProfile
	Thesis    *models.ThesisMembership
}

// Evaluator runs the full set of signal computers over one asset's data.
type Evaluator struct {
	trend     *TrendComputer
	valuation *ValuationComputer
	sentiment *SentimentComputer
	ownership *OwnershipComputer
	risk      *RiskComputer
	thesis    *ThesisComputer
}

// NewEvaluator creates an evaluator with all signal computers
func NewEvaluator() *Evaluator {
	return &Evaluator{
		trend:     NewTrendComputer(),
		valuation: NewValuationComputer(),
		sentiment: NewSentimentComputer(),
		ownership: NewOwnershipComputer(),
		risk:      NewRiskComputer(),
		thesis:    NewThesisComputer(),
	}
}

// Evaluate computes every signal for the input. The thesis signal is only
// present when the asset belongs to the thesis universe.
func (e *Evaluator) Evaluate(input Input) []models.Signal {
	signals := []models.Signal{
		e.trend.Compute(input.Bars),
		e.valuation.Compute(input.Overview),
		e.sentiment.Compute(input.Kind, input.Analyst),
		e.ownership.Compute(input.Kind, input.Ownership),
		e.risk.Compute(input.Risk),
	}

	if thesis := e.thesis.Compute(input.Thesis); thesis != nil {
		signals = append(signals, *thesis)
	}

	return signals
}
