package signals

import (
	"fmt"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// sectorMedians holds typical valuation multiples per sector, used as the
// benchmark for relative valuation scoring.
type sectorMedians struct {
	PE   float64
	PS   float64
	PFCF float64
}

var sectorMedianTable = map[string]sectorMedians{
	"Technology":             {PE: 30, PS: 8, PFCF: 30},
	"Consumer Cyclical":      {PE: 22, PS: 1.5, PFCF: 20},
	"Communication Services": {PE: 20, PS: 3, PFCF: 22},
	"Healthcare":             {PE: 25, PS: 4, PFCF: 25},
	"Financials":             {PE: 14, PS: 3, PFCF: 12},
	"Consumer Defensive":     {PE: 24, PS: 2, PFCF: 22},
	"Industrials":            {PE: 22, PS: 2.5, PFCF: 20},
	"Energy":                 {PE: 12, PS: 1.5, PFCF: 10},
	"Utilities":              {PE: 18, PS: 2, PFCF: 15},
	"Real Estate":            {PE: 35, PS: 8, PFCF: 30},
	"Basic Materials":        {PE: 15, PS: 2, PFCF: 14},
}

var defaultMedians = sectorMedians{PE: 22, PS: 3, PFCF: 20}

// ValuationComputer scores valuation against sector medians for stocks and
// cost/efficiency metrics for funds. Dispatch is by Overview.Kind.
type ValuationComputer struct{}

// NewValuationComputer creates a new valuation computer
func NewValuationComputer() *ValuationComputer {
	return &ValuationComputer{}
}

// Compute scores the valuation signal for an overview record
func (c *ValuationComputer) Compute(overview *models.Overview) models.Signal {
	if overview == nil {
		return models.Signal{
			ID:          models.SignalValuation,
			Name:        "Fundamental Valuation",
			Score:       0,
			Label:       "No Data",
			Explanation: "Company overview data is not available.",
		}
	}

	if overview.Kind == models.AssetKindFund {
		return c.computeFund(overview)
	}
	return c.computeStock(overview)
}

func (c *ValuationComputer) computeStock(overview *models.Overview) models.Signal {
	medians, ok := sectorMedianTable[overview.Sector]
	if !ok {
		medians = defaultMedians
	}

	explanations := []string{}
	totalScore := 0.0
	metricsUsed := 0

	// P/E carries extra weight as the most watched multiple
	peScore, peExpl := scoreMetric(overview.PERatio, medians.PE, "P/E Ratio")
	explanations = append(explanations, peExpl)
	if overview.PERatio > 0 {
		totalScore += peScore * 1.2
		metricsUsed++
	}

	psScore, psExpl := scoreMetric(overview.PSRatio, medians.PS, "P/S Ratio")
	explanations = append(explanations, psExpl)
	if overview.PSRatio > 0 {
		totalScore += psScore
		metricsUsed++
	}

	pfcfScore, pfcfExpl := scoreMetric(overview.PFCFRatio, medians.PFCF, "P/FCF Ratio")
	explanations = append(explanations, pfcfExpl)
	if overview.PFCFRatio > 0 {
		totalScore += pfcfScore
		metricsUsed++
	}

	// Growth modifier: high growth can justify higher multiples
	if overview.EarningsGrowth > 0.2 {
		totalScore += 0.5
		explanations = append(explanations, fmt.Sprintf(
			"Earnings growth of %.0f%% is strong - higher valuations may be justified.", overview.EarningsGrowth*100))
	} else if overview.EarningsGrowth < -0.05 {
		totalScore -= 0.5
		explanations = append(explanations, fmt.Sprintf(
			"Earnings growth of %.0f%% is negative - current valuations may not be supported.", overview.EarningsGrowth*100))
	}

	normalized := 0.0
	if metricsUsed > 0 {
		normalized = totalScore / (float64(metricsUsed) * 0.5)
	}
	score := finalScore(normalized)

	return models.Signal{
		ID:          models.SignalValuation,
		Name:        "Fundamental Valuation",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"pe_ratio":        overview.PERatio,
			"ps_ratio":        overview.PSRatio,
			"pfcf_ratio":      overview.PFCFRatio,
			"sector":          overview.Sector,
			"earnings_growth": overview.EarningsGrowth,
			"pe_score":        peScore,
			"ps_score":        psScore,
			"pfcf_score":      pfcfScore,
		},
	}
}

// scoreMetric scores a valuation multiple against its sector median.
// Non-positive values are unavailable and contribute nothing.
func scoreMetric(value, median float64, name string) (float64, string) {
	if value <= 0 {
		return 0, fmt.Sprintf("%s is not available or negative - skipping.", name)
	}

	ratio := value / median
	switch {
	case ratio < 0.6:
		return 1, fmt.Sprintf("%s of %.1f is well below the sector median of %g - significantly undervalued on this metric.", name, value, median)
	case ratio < 0.85:
		return 0.5, fmt.Sprintf("%s of %.1f is below the sector median of %g - modestly undervalued.", name, value, median)
	case ratio <= 1.15:
		return 0, fmt.Sprintf("%s of %.1f is roughly in line with the sector median of %g - fairly valued.", name, value, median)
	case ratio <= 1.5:
		return -0.5, fmt.Sprintf("%s of %.1f is above the sector median of %g - modestly overvalued.", name, value, median)
	default:
		return -1, fmt.Sprintf("%s of %.1f is well above the sector median of %g - significantly overvalued on this metric.", name, value, median)
	}
}

func (c *ValuationComputer) computeFund(overview *models.Overview) models.Signal {
	explanations := []string{}
	totalScore := 0.0

	// Expense ratio: lower is better
	expenseScore := 0.0
	switch er := overview.ExpenseRatio; {
	case er <= 0.10:
		expenseScore = 1
		explanations = append(explanations, fmt.Sprintf("Expense ratio of %.2f%% is exceptionally low - minimal drag on returns.", er))
	case er <= 0.25:
		expenseScore = 0.5
		explanations = append(explanations, fmt.Sprintf("Expense ratio of %.2f%% is competitive - low cost for the exposure.", er))
	case er <= 0.50:
		explanations = append(explanations, fmt.Sprintf("Expense ratio of %.2f%% is moderate - typical for a specialized fund.", er))
	case er <= 0.75:
		expenseScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Expense ratio of %.2f%% is elevated - cost drag may erode returns over time.", er))
	default:
		expenseScore = -1
		explanations = append(explanations, fmt.Sprintf("Expense ratio of %.2f%% is high - significant fee headwind.", er))
	}
	totalScore += expenseScore

	// AUM: larger funds have deeper liquidity and tighter spreads
	aumScore := 0.0
	aumB := overview.AUM / 1e9
	switch {
	case aumB >= 10:
		aumScore = 0.5
		explanations = append(explanations, fmt.Sprintf("AUM of $%.1fB indicates strong institutional adoption and deep liquidity.", aumB))
	case aumB >= 1:
		aumScore = 0.25
		explanations = append(explanations, fmt.Sprintf("AUM of $%.1fB reflects solid fund size with adequate liquidity.", aumB))
	case aumB >= 0.1:
		explanations = append(explanations, fmt.Sprintf("AUM of $%.0fM is modest - may have wider spreads during volatility.", overview.AUM/1e6))
	default:
		aumScore = -0.5
		explanations = append(explanations, fmt.Sprintf("AUM of $%.0fM is small - liquidity risk and potential closure risk.", overview.AUM/1e6))
	}
	totalScore += aumScore

	// Premium/discount to NAV
	navScore := 0.0
	pd := overview.PremiumDiscount
	switch {
	case pd <= 0.02 && pd >= -0.02:
		navScore = 0.25
		explanations = append(explanations, fmt.Sprintf("Trading near NAV (%+.1f%% premium/discount) - efficient pricing.", pd*100))
	case pd > 0.05:
		navScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Trading at a %.1f%% premium to NAV - buyers are overpaying relative to holdings.", pd*100))
	case pd < -0.05:
		navScore = -0.25
		explanations = append(explanations, fmt.Sprintf("Trading at a %.1f%% discount to NAV - may signal weak demand or structural issues.", pd*100))
	default:
		explanations = append(explanations, fmt.Sprintf("Premium/discount of %+.1f%% is within normal range.", pd*100))
	}
	totalScore += navScore

	// Tracking error
	trackingScore := 0.0
	switch te := overview.TrackingError; {
	case te <= 0.10:
		trackingScore = 0.5
		explanations = append(explanations, fmt.Sprintf("Tracking error of %.2f%% is excellent - tight index replication.", te))
	case te <= 0.30:
		trackingScore = 0.25
		explanations = append(explanations, fmt.Sprintf("Tracking error of %.2f%% is acceptable for the category.", te))
	case te <= 0.60:
		explanations = append(explanations, fmt.Sprintf("Tracking error of %.2f%% is moderate - some deviation from the index.", te))
	default:
		trackingScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Tracking error of %.2f%% is high - significant deviation from benchmark, may reflect active management or illiquid holdings.", te))
	}
	totalScore += trackingScore

	// YTD return momentum
	returnScore := 0.0
	switch ytd := overview.YTDReturn; {
	case ytd > 15:
		returnScore = 0.5
		explanations = append(explanations, fmt.Sprintf("YTD return of %.1f%% shows strong momentum in the underlying theme.", ytd))
	case ytd > 5:
		returnScore = 0.25
		explanations = append(explanations, fmt.Sprintf("YTD return of %.1f%% reflects positive but modest momentum.", ytd))
	case ytd > -5:
		explanations = append(explanations, fmt.Sprintf("YTD return of %.1f%% is flat - no clear directional momentum.", ytd))
	default:
		returnScore = -0.5
		explanations = append(explanations, fmt.Sprintf("YTD return of %.1f%% signals negative momentum in this theme.", ytd))
	}
	totalScore += returnScore

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalValuation,
		Name:        "Fund Fundamentals & Efficiency",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"expense_ratio":    overview.ExpenseRatio,
			"aum_billions":     round(aumB, 2),
			"premium_discount": overview.PremiumDiscount,
			"tracking_error":   overview.TrackingError,
			"ytd_return":       overview.YTDReturn,
			"expense_score":    expenseScore,
			"aum_score":        aumScore,
			"nav_score":        navScore,
			"tracking_score":   trackingScore,
			"return_score":     returnScore,
		},
	}
}
