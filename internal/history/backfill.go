package history

import (
	"math"

	"github.com/ternarybob/conflux/internal/models"
	"github.com/ternarybob/conflux/internal/signals"
)

// minBackfillBars matches the trend evaluator's minimum history; earlier
// dates cannot be scored causally.
const minBackfillBars = 50

// Backfiller reconstructs historical scores from price data alone. Each date
// is scored using only the bars available up to that date, so backfilled
// entries never look into the future.
type Backfiller struct {
	trend *signals.TrendComputer
	risk  *signals.RiskComputer
}

// NewBackfiller creates a new backfiller
func NewBackfiller() *Backfiller {
	return &Backfiller{
		trend: signals.NewTrendComputer(),
		risk:  signals.NewRiskComputer(),
	}
}

// Compute produces one entry per bar from the 51st onward. Only the trend and
// risk signals can be derived from prices, so backfilled composites cover two
// signals and carry no label.
func (b *Backfiller) Compute(bars []models.PriceBar) []models.HistoryEntry {
	if len(bars) < minBackfillBars {
		return []models.HistoryEntry{}
	}

	entries := make([]models.HistoryEntry, 0, len(bars)-minBackfillBars)
	for i := minBackfillBars; i < len(bars); i++ {
		slice := bars[:i+1]
		date := slice[len(slice)-1].Date.Format("2006-01-02")

		trendSignal := b.trend.Compute(slice)
		riskSignal := b.risk.Compute(signals.ProfileFromBars(slice))

		composite := math.Round((trendSignal.Score+riskSignal.Score)*100) / 100

		entries = append(entries, models.HistoryEntry{
			Date: date,
			Scores: map[string]float64{
				models.SignalTrend: trendSignal.Score,
				models.SignalRisk:  riskSignal.Score,
			},
			Composite:   composite,
			Label:       nil,
			SignalCount: 2,
			Source:      models.HistorySourceBackfill,
		})
	}

	return entries
}
