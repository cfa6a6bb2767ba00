package signals

import (
	"testing"

	"github.com/ternarybob/conflux/internal/models"
)

func TestEvaluator_StockWithoutThesis(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(Input{
		Ticker: "AAPL",
		Kind:   models.AssetKindStock,
		Bars:   makeBars(risingCloses(250, 100, 0.3)),
		Overview: &models.Overview{
			Ticker:  "AAPL",
			Sector:  "Technology",
			Kind:    models.AssetKindStock,
			PERatio: 28,
		},
		Risk: &models.RiskProfile{Beta: floatPtr(1.1)},
	})

	if len(result) != 5 {
		t.Fatalf("Evaluate returned %d signals, want 5 without thesis membership", len(result))
	}

	ids := map[string]bool{}
	for _, s := range result {
		ids[s.ID] = true
	}
	for _, want := range []string{
		models.SignalTrend, models.SignalValuation, models.SignalSentiment,
		models.SignalOwnership, models.SignalRisk,
	} {
		if !ids[want] {
			t.Errorf("missing signal %s", want)
		}
	}
}

func TestEvaluator_FundWithThesis(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(Input{
		Ticker: "SMH",
		Kind:   models.AssetKindFund,
		Bars:   makeBars(risingCloses(250, 200, 0.4)),
		Overview: &models.Overview{
			Ticker:       "SMH",
			Kind:         models.AssetKindFund,
			ExpenseRatio: 0.35,
			AUM:          22e9,
		},
		Thesis: &models.ThesisMembership{
			Ticker:   "SMH",
			Tier:     1,
			TierName: "Core Semiconductor",
			Priority: "Core",
		},
	})

	if len(result) != 6 {
		t.Fatalf("Evaluate returned %d signals, want 6 with thesis membership", len(result))
	}
	last := result[len(result)-1]
	if last.ID != models.SignalThesis {
		t.Errorf("last signal = %s, want %s", last.ID, models.SignalThesis)
	}
	if last.Score != 2 {
		t.Errorf("thesis score = %v, want 2 for a tier 1 holding", last.Score)
	}
}

func TestEvaluator_MissingCategoriesStillScore(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(Input{Ticker: "XXXX", Kind: models.AssetKindStock})

	if len(result) != 5 {
		t.Fatalf("Evaluate returned %d signals, want 5", len(result))
	}
	for _, s := range result {
		if s.ID == models.SignalTrend {
			if s.Label != "Insufficient Data" {
				t.Errorf("trend label = %v, want Insufficient Data", s.Label)
			}
			continue
		}
		if s.Label != "No Data" {
			t.Errorf("%s label = %v, want No Data", s.ID, s.Label)
		}
	}
}
