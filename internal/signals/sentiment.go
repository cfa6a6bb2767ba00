package signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// SentimentComputer scores analyst and earnings sentiment for stocks, or
// rating/rank/flow sentiment for funds.
type SentimentComputer struct{}

// NewSentimentComputer creates a new sentiment computer
func NewSentimentComputer() *SentimentComputer {
	return &SentimentComputer{}
}

// Compute scores the sentiment signal for an analyst snapshot
func (c *SentimentComputer) Compute(kind models.AssetKind, snapshot *models.AnalystSnapshot) models.Signal {
	if snapshot == nil {
		return models.Signal{
			ID:          models.SignalSentiment,
			Name:        "Analyst & Earnings Sentiment",
			Score:       0,
			Label:       "No Data",
			Explanation: "Analyst and earnings data is not available.",
		}
	}

	if kind == models.AssetKindFund {
		return c.computeFund(snapshot)
	}
	return c.computeStock(snapshot)
}

func (c *SentimentComputer) computeStock(snapshot *models.AnalystSnapshot) models.Signal {
	explanations := []string{}
	totalScore := 0.0

	// Analyst consensus. Strong sell bands are checked before the milder one
	// so a heavily sold name lands on the stronger penalty.
	totalRatings := snapshot.Ratings.Buy + snapshot.Ratings.Hold + snapshot.Ratings.Sell
	buyPct := 0.0
	sellPct := 0.0
	if totalRatings > 0 {
		buyPct = float64(snapshot.Ratings.Buy) / float64(totalRatings)
		sellPct = float64(snapshot.Ratings.Sell) / float64(totalRatings)
	}

	consensusScore := 0.0
	switch {
	case buyPct > 0.75:
		consensusScore = 1
		explanations = append(explanations, fmt.Sprintf(
			"Strong analyst consensus: %.0f%% of %d analysts rate Buy - overwhelmingly bullish.", buyPct*100, totalRatings))
	case buyPct > 0.6:
		consensusScore = 0.5
		explanations = append(explanations, fmt.Sprintf(
			"Positive analyst consensus: %.0f%% of %d analysts rate Buy - a solid majority.", buyPct*100, totalRatings))
	case sellPct > 0.35:
		consensusScore = -1
		explanations = append(explanations, fmt.Sprintf(
			"Bearish analyst consensus: %.0f%% of %d analysts rate Sell - significant downgrade pressure.", sellPct*100, totalRatings))
	case sellPct > 0.25:
		consensusScore = -0.5
		explanations = append(explanations, fmt.Sprintf(
			"Cautious analyst sentiment: %.0f%% of %d analysts rate Sell - notable bearish contingent.", sellPct*100, totalRatings))
	default:
		explanations = append(explanations, fmt.Sprintf(
			"Mixed analyst consensus: %.0f%% Buy, %.0f%% Sell among %d analysts - no strong directional lean.", buyPct*100, sellPct*100, totalRatings))
	}
	totalScore += consensusScore

	// Price target upside/downside
	targetScore := 0.0
	var upsidePct float64
	if snapshot.CurrentPrice > 0 && snapshot.MedianTarget > 0 {
		upsidePct = (snapshot.MedianTarget - snapshot.CurrentPrice) / snapshot.CurrentPrice * 100
		switch {
		case upsidePct > 20:
			targetScore = 0.75
			explanations = append(explanations, fmt.Sprintf(
				"Median price target of $%g implies %.1f%% upside - analysts see significant room to run.", snapshot.MedianTarget, upsidePct))
		case upsidePct > 5:
			targetScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Median price target of $%g implies %.1f%% upside - modest appreciation expected.", snapshot.MedianTarget, upsidePct))
		case upsidePct > -5:
			explanations = append(explanations, fmt.Sprintf(
				"Median price target of $%g is near current price (%+.1f%%) - analysts see fair value around here.", snapshot.MedianTarget, upsidePct))
		case upsidePct > -20:
			targetScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Median price target of $%g implies %.1f%% downside - analysts see the stock as overvalued.", snapshot.MedianTarget, upsidePct))
		default:
			targetScore = -1
			explanations = append(explanations, fmt.Sprintf(
				"Median price target of $%g implies %.1f%% downside - analysts see significant overvaluation.", snapshot.MedianTarget, upsidePct))
		}
	}
	totalScore += targetScore

	// Earnings surprise track record
	surpriseScore := 0.0
	beats := 0
	misses := 0
	if len(snapshot.EarningsSurprises) > 0 {
		totalSurprisePct := 0.0
		for _, q := range snapshot.EarningsSurprises {
			if q.Estimate != 0 {
				totalSurprisePct += (q.Actual - q.Estimate) / math.Abs(q.Estimate) * 100
			}
			if q.Actual > q.Estimate {
				beats++
			} else if q.Actual < q.Estimate {
				misses++
			}
		}
		avgSurprise := totalSurprisePct / float64(len(snapshot.EarningsSurprises))
		n := len(snapshot.EarningsSurprises)

		switch {
		case beats >= 3 && avgSurprise > 5:
			surpriseScore = 0.5
			explanations = append(explanations, fmt.Sprintf(
				"Consistent earnings beats: %d/%d quarters beat estimates by an avg of %.1f%% - strong execution.", beats, n, avgSurprise))
		case beats > misses && avgSurprise > 0:
			surpriseScore = 0.25
			explanations = append(explanations, fmt.Sprintf(
				"Positive earnings track record: %d/%d beats with avg surprise of +%.1f%%.", beats, n, avgSurprise))
		case misses >= 3 && avgSurprise < -5:
			surpriseScore = -0.5
			explanations = append(explanations, fmt.Sprintf(
				"Consistent earnings misses: %d/%d quarters missed estimates by an avg of %.1f%% - execution concerns.", misses, n, avgSurprise))
		case misses > beats:
			surpriseScore = -0.25
			explanations = append(explanations, fmt.Sprintf(
				"Negative earnings track record: %d/%d misses with avg surprise of %.1f%%.", misses, n, avgSurprise))
		default:
			explanations = append(explanations, fmt.Sprintf(
				"Mixed earnings track: %d beats, %d misses over %d quarters.", beats, misses, n))
		}
	}
	totalScore += surpriseScore

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalSentiment,
		Name:        "Analyst & Earnings Sentiment",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"buy_pct":         round(buyPct*100, 1),
			"sell_pct":        round(sellPct*100, 1),
			"median_target":   snapshot.MedianTarget,
			"current_price":   snapshot.CurrentPrice,
			"target_upside":   round(upsidePct, 1),
			"earnings_beats":  beats,
			"earnings_misses": misses,
			"consensus_score": consensusScore,
			"target_score":    targetScore,
			"surprise_score":  surpriseScore,
		},
	}
}

func (c *SentimentComputer) computeFund(snapshot *models.AnalystSnapshot) models.Signal {
	explanations := []string{}
	totalScore := 0.0

	// Morningstar rating (1-5 stars)
	ratingScore := 0.0
	stars := snapshot.MorningstarRating
	switch {
	case stars >= 5:
		ratingScore = 1
		explanations = append(explanations, "Morningstar 5-star rating - top-tier risk-adjusted performance in its category.")
	case stars >= 4:
		ratingScore = 0.5
		explanations = append(explanations, fmt.Sprintf("Morningstar %g-star rating - above-average risk-adjusted returns.", stars))
	case stars >= 3:
		explanations = append(explanations, fmt.Sprintf("Morningstar %g-star rating - average performance within its peer group.", stars))
	case stars >= 2:
		ratingScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Morningstar %g-star rating - below-average risk-adjusted returns.", stars))
	default:
		ratingScore = -1
		explanations = append(explanations, fmt.Sprintf("Morningstar %g-star rating - poor risk-adjusted performance, bottom of category.", stars))
	}
	totalScore += ratingScore

	// Category percentile rank, lower is better
	rankScore := 0.0
	rank := snapshot.CategoryRank
	switch {
	case rank <= 10:
		rankScore = 1
		explanations = append(explanations, fmt.Sprintf("Ranked in the top %gth percentile of its category - elite performance.", rank))
	case rank <= 25:
		rankScore = 0.5
		explanations = append(explanations, fmt.Sprintf("Ranked in the %gth percentile - solidly in the top quartile.", rank))
	case rank <= 50:
		explanations = append(explanations, fmt.Sprintf("Ranked at the %gth percentile - middle of the pack.", rank))
	case rank <= 75:
		rankScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Ranked at the %gth percentile - below median in its category.", rank))
	default:
		rankScore = -1
		explanations = append(explanations, fmt.Sprintf("Ranked at the %gth percentile - bottom quartile of its category.", rank))
	}
	totalScore += rankScore

	// One-year net flows in millions
	flowScore := 0.0
	flows := snapshot.InflowsOutflows
	switch {
	case flows > 1000:
		flowScore = 0.5
		explanations = append(explanations, fmt.Sprintf("Net inflows of $%.0fM signal strong investor conviction and growing demand.", flows))
	case flows > 100:
		flowScore = 0.25
		explanations = append(explanations, fmt.Sprintf("Net inflows of $%.0fM indicate positive sentiment among fund investors.", flows))
	case flows > -100:
		explanations = append(explanations, fmt.Sprintf("Flows are roughly flat ($%.0fM) - neither strong conviction nor concern.", flows))
	case flows > -500:
		flowScore = -0.25
		explanations = append(explanations, fmt.Sprintf("Net outflows of $%.0fM suggest waning investor interest.", math.Abs(flows)))
	default:
		flowScore = -0.5
		explanations = append(explanations, fmt.Sprintf("Heavy net outflows of $%.0fM - investors are exiting the theme.", math.Abs(flows)))
	}
	totalScore += flowScore

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalSentiment,
		Name:        "Fund Rating & Sentiment",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components: map[string]interface{}{
			"morningstar_rating": stars,
			"category_rank":      rank,
			"inflows_outflows":   flows,
			"rating_score":       ratingScore,
			"rank_score":         rankScore,
			"flow_score":         flowScore,
		},
	}
}
