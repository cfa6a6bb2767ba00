package signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// RiskComputer scores the risk profile of an asset. Fields the provider could
// not supply are skipped rather than treated as zero risk.
type RiskComputer struct{}

// NewRiskComputer creates a new risk computer
func NewRiskComputer() *RiskComputer {
	return &RiskComputer{}
}

// Compute scores the risk signal for a risk profile
func (c *RiskComputer) Compute(profile *models.RiskProfile) models.Signal {
	if profile == nil {
		return models.Signal{
			ID:          models.SignalRisk,
			Name:        "Risk Profile",
			Score:       0,
			Label:       "No Data",
			Explanation: "Risk metrics are not available.",
		}
	}

	explanations := []string{}
	skipped := []string{}
	components := map[string]interface{}{}
	totalScore := 0.0

	// Beta vs the broad market
	betaScore := 0.0
	if profile.Beta != nil {
		beta := *profile.Beta
		components["beta"] = round(beta, 2)
		switch {
		case beta <= 0.8:
			betaScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Beta of %.2f means the stock moves less than the market - defensive characteristics.", beta))
		case beta <= 1.2:
			betaScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Beta of %.2f is close to market - typical systematic risk exposure.", beta))
		case beta <= 1.5:
			betaScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Beta of %.2f amplifies market moves - expect larger swings in both directions.", beta))
		default:
			betaScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Beta of %.2f is high - significantly more volatile than the market.", beta))
		}
	} else {
		skipped = append(skipped, "beta")
	}
	components["beta_score"] = betaScore
	totalScore += betaScore

	// Annualized historical volatility
	volScore := 0.0
	if profile.HistoricalVolatility != nil {
		vol := *profile.HistoricalVolatility
		components["volatility"] = round(vol, 3)
		switch {
		case vol <= 0.2:
			volScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Annualized volatility of %.0f%% is low - stable price behavior.", vol*100))
		case vol <= 0.3:
			volScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Annualized volatility of %.0f%% is moderate - manageable price swings.", vol*100))
		case vol <= 0.45:
			volScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Annualized volatility of %.0f%% is elevated - expect meaningful drawdowns.", vol*100))
		default:
			volScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Annualized volatility of %.0f%% is high - large price swings are routine.", vol*100))
		}
	} else {
		skipped = append(skipped, "volatility")
	}
	components["volatility_score"] = volScore
	totalScore += volScore

	// Maximum drawdown over the lookback window
	ddScore := 0.0
	if profile.MaxDrawdown != nil {
		drawdownPct := math.Abs(*profile.MaxDrawdown) * 100
		components["max_drawdown_pct"] = round(drawdownPct, 1)
		switch {
		case drawdownPct <= 15:
			ddScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Maximum drawdown of %.1f%% is shallow - holders have not endured severe declines.", drawdownPct))
		case drawdownPct <= 25:
			explanations = append(explanations, fmt.Sprintf(
				"Maximum drawdown of %.1f%% is within normal bounds for equities.", drawdownPct))
		case drawdownPct <= 40:
			ddScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Maximum drawdown of %.1f%% is deep - the position has seen significant pain.", drawdownPct))
		default:
			ddScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Maximum drawdown of %.1f%% is severe - extreme downside realized in this window.", drawdownPct))
		}
	} else {
		skipped = append(skipped, "max drawdown")
	}
	components["drawdown_score"] = ddScore
	totalScore += ddScore

	// Balance sheet leverage
	leverageScore := 0.0
	if profile.DebtToEquity != nil {
		de := *profile.DebtToEquity
		components["debt_to_equity"] = round(de, 2)
		switch {
		case de <= 0.3:
			leverageScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Debt-to-equity of %.2f is conservative - a strong balance sheet.", de))
		case de <= 0.8:
			leverageScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Debt-to-equity of %.2f is manageable - reasonable leverage.", de))
		case de <= 1.5:
			leverageScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Debt-to-equity of %.2f is elevated - debt service could pressure earnings.", de))
		default:
			leverageScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Debt-to-equity of %.2f is high - significant balance sheet risk.", de))
		}
	} else {
		skipped = append(skipped, "debt-to-equity")
	}
	components["leverage_score"] = leverageScore
	totalScore += leverageScore

	if len(skipped) > 0 {
		explanations = append(explanations, fmt.Sprintf(
			"Metrics not available and excluded from scoring: %s.", strings.Join(skipped, ", ")))
	}

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalRisk,
		Name:        "Risk Profile",
		Score:       score,
		Label:       riskLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components:  components,
	}
}

// ProfileFromBars derives the price-only risk metrics (volatility and max
// drawdown) from a daily series. Beta and leverage need external data and stay
// nil, so profiles built this way score on two factors at most. Returns nil
// when the series is too short to measure.
func ProfileFromBars(bars []models.PriceBar) *models.RiskProfile {
	if len(bars) < 20 {
		return nil
	}
	profile := &models.RiskProfile{}
	if vol, ok := annualizedVolatility(bars); ok {
		v := vol
		profile.HistoricalVolatility = &v
	}
	if dd, ok := maxDrawdown(bars); ok {
		d := dd
		profile.MaxDrawdown = &d
	}
	return profile
}

// riskLabel maps a risk score to its descriptive label. Unlike the
// directional signals, higher means lower risk.
func riskLabel(score float64) string {
	switch {
	case score >= 1.5:
		return "Low Risk"
	case score >= 0.5:
		return "Moderate-Low Risk"
	case score > -0.5:
		return "Moderate Risk"
	case score > -1.5:
		return "Elevated Risk"
	default:
		return "High Risk"
	}
}
