package history

import (
	"testing"
	"time"

	"github.com/ternarybob/conflux/internal/models"
)

func priceSeries(n int) []models.PriceBar {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	price := 100.0
	for i := range bars {
		price += 0.3
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Close:  price,
			Volume: 500000,
		}
	}
	return bars
}

func TestBackfiller_ShortSeriesEmpty(t *testing.T) {
	backfiller := NewBackfiller()

	entries := backfiller.Compute(priceSeries(40))
	if len(entries) != 0 {
		t.Errorf("Compute = %d entries, want 0 for fewer than 50 bars", len(entries))
	}
}

func TestBackfiller_EntryPerBarPastMinimum(t *testing.T) {
	backfiller := NewBackfiller()

	bars := priceSeries(120)
	entries := backfiller.Compute(bars)

	if len(entries) != 70 {
		t.Fatalf("Compute = %d entries, want 70 for 120 bars", len(entries))
	}

	first := entries[0]
	if first.Date != bars[50].Date.Format("2006-01-02") {
		t.Errorf("first date = %s, want the 51st bar's date", first.Date)
	}
	if first.Source != models.HistorySourceBackfill {
		t.Errorf("Source = %s, want backfill", first.Source)
	}
	if first.SignalCount != 2 {
		t.Errorf("SignalCount = %d, want 2", first.SignalCount)
	}
	if first.Label != nil {
		t.Errorf("Label = %v, want nil for backfilled entries", first.Label)
	}
	if _, ok := first.Scores[models.SignalTrend]; !ok {
		t.Error("Scores should include the trend signal")
	}
	if _, ok := first.Scores[models.SignalRisk]; !ok {
		t.Error("Scores should include the risk signal")
	}
}

func TestBackfiller_CompositeMatchesScores(t *testing.T) {
	backfiller := NewBackfiller()

	entries := backfiller.Compute(priceSeries(80))
	for _, e := range entries {
		sum := e.Scores[models.SignalTrend] + e.Scores[models.SignalRisk]
		diff := e.Composite - sum
		if diff > 0.005 || diff < -0.005 {
			t.Errorf("Composite %v does not match score sum %v on %s", e.Composite, sum, e.Date)
		}
	}
}

func TestBackfiller_IsCausal(t *testing.T) {
	backfiller := NewBackfiller()

	// Extending the series must not change earlier entries
	short := backfiller.Compute(priceSeries(100))
	long := backfiller.Compute(priceSeries(150))

	for i, e := range short {
		if long[i].Date != e.Date || long[i].Composite != e.Composite {
			t.Fatalf("entry %d changed when the series was extended: %+v vs %+v", i, e, long[i])
		}
	}
}
