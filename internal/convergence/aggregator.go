// Package convergence combines per-signal scores into a single composite
// assessment with proportionally scaled thresholds for variable signal counts.
package convergence

import (
	"fmt"
	"math"

	"github.com/ternarybob/conflux/internal/models"
)

// Confidence levels for a convergence assessment
const (
	ConfidenceHigh     = "high"
	ConfidenceModerate = "moderate"
	ConfidenceLow      = "low"
)

// Aggregator folds signal scores into a composite convergence result.
type Aggregator struct{}

// NewAggregator creates a new convergence aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the convergence result for a set of signals. Thresholds
// scale with the signal count so a 6-signal run is judged on the same per-signal
// bar as a 5-signal run.
func (a *Aggregator) Aggregate(signals []models.Signal) models.ConvergenceResult {
	if len(signals) == 0 {
		return models.ConvergenceResult{
			CompositeScore: 0,
			Label:          "No Signals",
			Summary:        "No signals were available for analysis.",
			Confidence:     ConfidenceLow,
		}
	}

	signalCount := len(signals)
	composite := 0.0
	bullishCount := 0
	bearishCount := 0
	neutralCount := 0
	hasStrongBullish := false
	hasStrongBearish := false

	for _, s := range signals {
		composite += s.Score
		switch {
		case s.Score >= 0.5:
			bullishCount++
		case s.Score <= -0.5:
			bearishCount++
		default:
			neutralCount++
		}
		if s.Score >= 1.5 {
			hasStrongBullish = true
		}
		if s.Score <= -1.5 {
			hasStrongBearish = true
		}
	}

	// A strong signal on each side means the dimensions genuinely disagree,
	// which overrides any composite-based read.
	dissenting := hasStrongBullish && hasStrongBearish

	scale := float64(signalCount) / 5
	strongBullishThreshold := 7 * scale
	modBullishThreshold := 4 * scale
	modBearishThreshold := -3 * scale
	strongBearishThreshold := -7 * scale

	var label, summary, confidence string
	switch {
	case dissenting:
		label = "Mixed Signals"
		summary = fmt.Sprintf(
			"Signals are strongly conflicting - at least one dimension is significantly bullish while another is significantly bearish. Exercise caution and wait for clearer alignment across the %d signal dimensions.",
			signalCount)
		confidence = ConfidenceLow
	case composite >= strongBullishThreshold:
		label = "Strong Bullish Convergence"
		summary = fmt.Sprintf(
			"%d of %d signals align bullish. Price momentum, valuation, analyst sentiment, institutional activity, and risk profile broadly support a positive outlook with high conviction.",
			bullishCount, signalCount)
		confidence = ConfidenceHigh
	case composite >= modBullishThreshold:
		label = "Moderate Bullish Lean"
		summary = fmt.Sprintf(
			"%d of %d signals lean bullish. The weight of evidence across technical, fundamental, sentiment, ownership, and risk dimensions favors upside, though not all signals are strongly aligned.",
			bullishCount, signalCount)
		confidence = ConfidenceModerate
	case composite >= modBearishThreshold:
		label = "No Clear Edge"
		summary = fmt.Sprintf(
			"Signals are mixed: %d bullish, %d bearish, %d neutral across %d dimensions. There is no strong directional consensus. Consider waiting for stronger alignment before acting.",
			bullishCount, bearishCount, neutralCount, signalCount)
		confidence = ConfidenceLow
	case composite >= strongBearishThreshold:
		label = "Moderate Bearish Lean"
		summary = fmt.Sprintf(
			"%d of %d signals lean bearish. Technical momentum, valuation, analyst views, insider activity, and/or risk factors suggest caution at current levels.",
			bearishCount, signalCount)
		confidence = ConfidenceModerate
	default:
		label = "Strong Bearish Convergence"
		summary = fmt.Sprintf(
			"%d of %d signals align bearish. Broad weakness across price trend, fundamentals, analyst sentiment, insider activity, and risk metrics suggests significant downside risk.",
			bearishCount, signalCount)
		confidence = ConfidenceHigh
	}

	return models.ConvergenceResult{
		CompositeScore: round1(composite),
		Label:          label,
		Summary:        summary,
		Confidence:     confidence,
		Dissenting:     dissenting,
		SignalCount:    signalCount,
		BullishCount:   bullishCount,
		BearishCount:   bearishCount,
		NeutralCount:   neutralCount,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
