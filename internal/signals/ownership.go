package signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// OwnershipComputer scores insider and institutional activity for stocks, or
// creation/redemption flow dynamics for funds.
type OwnershipComputer struct{}

// NewOwnershipComputer creates a new ownership computer
func NewOwnershipComputer() *OwnershipComputer {
	return &OwnershipComputer{}
}

// Compute scores the ownership signal for an activity record
func (c *OwnershipComputer) Compute(kind models.AssetKind, activity *models.OwnershipActivity) models.Signal {
	if activity == nil {
		return models.Signal{
			ID:          models.SignalOwnership,
			Name:        "Insider & Institutional Activity",
			Score:       0,
			Label:       "No Data",
			Explanation: "Insider and institutional ownership data is not available.",
		}
	}

	if kind == models.AssetKindFund {
		return c.computeFund(activity)
	}
	return c.computeStock(activity)
}

func (c *OwnershipComputer) computeStock(activity *models.OwnershipActivity) models.Signal {
	explanations := []string{}
	totalScore := 0.0

	var totalBuys, totalSells float64
	for _, txn := range activity.InsiderTransactions {
		switch txn.Type {
		case "buy":
			totalBuys += txn.Value
		case "sell":
			totalSells += txn.Value
		}
	}

	// Buying is weighted 2x since selling has many non-signal reasons
	// (tax, diversification, scheduled plans).
	insiderScore := 0.0
	switch {
	case totalBuys > 0 && totalBuys*2 > totalSells:
		insiderScore = 0.75
		explanations = append(explanations, fmt.Sprintf(
			"Net insider buying: $%.1fM in purchases vs $%.1fM in sales - insiders are putting their money in, a bullish signal.",
			totalBuys/1e6, totalSells/1e6))
	case totalBuys > 0 && totalSells > 0:
		explanations = append(explanations, fmt.Sprintf(
			"Mixed insider activity: $%.1fM in purchases vs $%.1fM in sales - no clear conviction signal.",
			totalBuys/1e6, totalSells/1e6))
	case totalSells > 10e6:
		insiderScore = -0.5
		explanations = append(explanations, fmt.Sprintf(
			"Heavy insider selling: $%.1fM in recent sales with minimal buying - may indicate insider caution.", totalSells/1e6))
	case totalSells > 0:
		insiderScore = -0.25
		explanations = append(explanations, fmt.Sprintf(
			"Moderate insider selling: $%.1fM in recent sales - common for executives but worth noting.", totalSells/1e6))
	default:
		explanations = append(explanations, "No recent insider transactions detected.")
	}
	totalScore += insiderScore

	// Institutional ownership level. Skipped entirely when the feed does not
	// supply it, never scored as zero ownership.
	ownershipScore := 0.0
	if activity.InstitutionalOwnership != nil {
		instOwn := *activity.InstitutionalOwnership
		switch {
		case instOwn > 0.7:
			ownershipScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Institutional ownership at %.0f%% - strong institutional backing and broad coverage.", instOwn*100))
		case instOwn > 0.5:
			ownershipScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Institutional ownership at %.0f%% - moderate institutional interest.", instOwn*100))
		case instOwn > 0.3:
			explanations = append(explanations, fmt.Sprintf(
				"Institutional ownership at %.0f%% - below average institutional coverage.", instOwn*100))
		default:
			ownershipScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Institutional ownership at %.0f%% - thin institutional support, higher retail concentration.", instOwn*100))
		}
	}
	totalScore += ownershipScore

	// Quarter-over-quarter institutional change
	changeScore := 0.0
	if activity.InstitutionalOwnership != nil && activity.InstitutionalOwnershipPrior != nil {
		changePct := (*activity.InstitutionalOwnership - *activity.InstitutionalOwnershipPrior) * 100
		switch {
		case changePct > 3:
			changeScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Institutional accumulation: ownership up %.1fpp quarter-over-quarter - institutions are adding positions.", changePct))
		case changePct > 1:
			changeScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Modest institutional accumulation: ownership up %.1fpp quarter-over-quarter.", changePct))
		case changePct < -3:
			changeScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Institutional reduction: ownership down %.1fpp quarter-over-quarter - institutions are trimming positions.", math.Abs(changePct)))
		case changePct < -1:
			changeScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Modest institutional reduction: ownership down %.1fpp quarter-over-quarter.", math.Abs(changePct)))
		default:
			explanations = append(explanations, fmt.Sprintf(
				"Institutional ownership stable (%+.1fpp change) - no significant shift.", changePct))
		}
	}
	totalScore += changeScore

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalOwnership,
		Name:        "Insider & Institutional Activity",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"insider_buys":            totalBuys,
			"insider_sells":           totalSells,
			"institutional_ownership": activity.InstitutionalOwnership,
			"insider_score":           insiderScore,
			"ownership_score":         ownershipScore,
			"ownership_change_score":  changeScore,
		},
	}
}

func (c *OwnershipComputer) computeFund(activity *models.OwnershipActivity) models.Signal {
	explanations := []string{}
	totalScore := 0.0

	// 30-day net flows
	flowScore30 := 0.0
	flows30M := activity.NetFlows30D / 1e6
	switch {
	case flows30M > 500:
		flowScore30 = 0.75
		explanations = append(explanations, fmt.Sprintf(
			"Strong 30-day net inflows of $%.1fB - institutional demand is surging.", flows30M/1000))
	case flows30M > 50:
		flowScore30 = 0.5
		explanations = append(explanations, fmt.Sprintf(
			"Positive 30-day net inflows of $%.0fM - steady demand from investors.", flows30M))
	case flows30M > -50:
		explanations = append(explanations, fmt.Sprintf(
			"30-day flows are roughly flat ($%.0fM) - balanced creation and redemption.", flows30M))
	case flows30M > -500:
		flowScore30 = -0.5
		explanations = append(explanations, fmt.Sprintf(
			"30-day net outflows of $%.0fM - investors are pulling capital.", math.Abs(flows30M)))
	default:
		flowScore30 = -0.75
		explanations = append(explanations, fmt.Sprintf(
			"Heavy 30-day net outflows of $%.1fB - significant redemption pressure.", math.Abs(flows30M)/1000))
	}
	totalScore += flowScore30

	// Creation/redemption ratio
	crScore := 0.0
	crRatio := activity.CreationRedemptionRatio
	switch {
	case crRatio >= 1.3:
		crScore = 0.5
		explanations = append(explanations, fmt.Sprintf(
			"Creation/redemption ratio of %.2f shows strong net creation activity - authorized participants see demand.", crRatio))
	case crRatio >= 1.1:
		crScore = 0.25
		explanations = append(explanations, fmt.Sprintf(
			"Creation/redemption ratio of %.2f shows modest net creation - healthy demand signal.", crRatio))
	case crRatio >= 0.9:
		explanations = append(explanations, fmt.Sprintf(
			"Creation/redemption ratio of %.2f is balanced - no strong directional signal.", crRatio))
	case crRatio >= 0.75:
		crScore = -0.25
		explanations = append(explanations, fmt.Sprintf(
			"Creation/redemption ratio of %.2f shows net redemptions - soft demand.", crRatio))
	default:
		crScore = -0.5
		explanations = append(explanations, fmt.Sprintf(
			"Creation/redemption ratio of %.2f shows heavy net redemptions - significant selling pressure.", crRatio))
	}
	totalScore += crScore

	// Flow acceleration: 30-day pace vs the 90-day monthly average
	accelScore := 0.0
	flows90M := activity.NetFlows90D / 1e6
	avgMonthly90 := flows90M / 3
	if avgMonthly90 != 0 {
		accelRatio := flows30M / avgMonthly90
		switch {
		case accelRatio > 1.5 && flows30M > 0:
			accelScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Flow acceleration: 30-day pace is %.1fx the 90-day average - demand is intensifying.", accelRatio))
		case accelRatio > 1.1 && flows30M > 0:
			accelScore = 0.25
			explanations = append(explanations, "Flows modestly accelerating vs 90-day trend - building momentum.")
		case accelRatio < 0.5 && flows30M < 0:
			accelScore = -0.5
			explanations = append(explanations, "Outflows accelerating: 30-day pace exceeds the 90-day trend - sentiment deteriorating.")
		case accelRatio < 0.8 && flows30M < avgMonthly90:
			accelScore = -0.25
			explanations = append(explanations, "Flows decelerating vs 90-day average - momentum fading.")
		default:
			explanations = append(explanations, "Flow pace is consistent with the 90-day trend - no significant acceleration or deceleration.")
		}
	}
	totalScore += accelScore

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalOwnership,
		Name:        "Fund Flows & Holdings",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"net_flows_30d":             activity.NetFlows30D,
			"net_flows_90d":             activity.NetFlows90D,
			"creation_redemption_ratio": crRatio,
			"flows_30d_millions":        round(flows30M, 0),
			"flows_90d_millions":        round(flows90M, 0),
			"flow_score_30d":            flowScore30,
			"cr_score":                  crScore,
			"accel_score":               accelScore,
		},
	}
}
