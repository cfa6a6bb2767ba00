package signals

import (
	"testing"

	"github.com/ternarybob/conflux/internal/models"
)

func TestValuationComputer_NoData(t *testing.T) {
	computer := NewValuationComputer()

	result := computer.Compute(nil)

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if result.Label != "No Data" {
		t.Errorf("Label = %v, want No Data", result.Label)
	}
}

func TestValuationComputer_UndervaluedStock(t *testing.T) {
	computer := NewValuationComputer()

	// All multiples well below Technology sector medians (30 / 8 / 30)
	overview := &models.Overview{
		Ticker:         "CHEAP",
		Sector:         "Technology",
		Kind:           models.AssetKindStock,
		PERatio:        15,
		PSRatio:        4,
		PFCFRatio:      15,
		EarningsGrowth: 0.25,
	}

	result := computer.Compute(overview)

	if result.Score < 1 {
		t.Errorf("Score = %v, want strongly positive for a cheap high-growth stock", result.Score)
	}
}

func TestValuationComputer_OvervaluedStock(t *testing.T) {
	computer := NewValuationComputer()

	overview := &models.Overview{
		Ticker:         "RICH",
		Sector:         "Energy",
		Kind:           models.AssetKindStock,
		PERatio:        40,
		PSRatio:        6,
		PFCFRatio:      35,
		EarningsGrowth: -0.10,
	}

	result := computer.Compute(overview)

	if result.Score > -1 {
		t.Errorf("Score = %v, want strongly negative for an expensive shrinking stock", result.Score)
	}
}

func TestValuationComputer_UnknownSectorUsesDefaults(t *testing.T) {
	computer := NewValuationComputer()

	// Default medians are 22 / 3 / 20; metrics roughly in line should be neutral
	overview := &models.Overview{
		Ticker:    "MID",
		Sector:    "Cryptocurrency",
		Kind:      models.AssetKindStock,
		PERatio:   22,
		PSRatio:   3,
		PFCFRatio: 20,
	}

	result := computer.Compute(overview)

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0 for in-line multiples against default medians", result.Score)
	}
	if result.Label != "Neutral" {
		t.Errorf("Label = %v, want Neutral", result.Label)
	}
}

func TestValuationComputer_MissingMetricsSkipped(t *testing.T) {
	computer := NewValuationComputer()

	overview := &models.Overview{
		Ticker:  "PART",
		Sector:  "Healthcare",
		Kind:    models.AssetKindStock,
		PERatio: 10, // well under the 25 median
	}

	result := computer.Compute(overview)

	if result.Score <= 0 {
		t.Errorf("Score = %v, want positive when the only available metric is cheap", result.Score)
	}
}

func TestValuationComputer_Fund(t *testing.T) {
	computer := NewValuationComputer()

	overview := &models.Overview{
		Ticker:          "SMH",
		Kind:            models.AssetKindFund,
		ExpenseRatio:    0.08,
		AUM:             22e9,
		PremiumDiscount: 0.001,
		TrackingError:   0.05,
		YTDReturn:       22.5,
	}

	result := computer.Compute(overview)

	// expense 1 + aum 0.5 + nav 0.25 + tracking 0.5 + ytd 0.5 = 2.75, clamped
	if result.Score != 2 {
		t.Errorf("Score = %v, want 2 for a cheap large fund with strong momentum", result.Score)
	}
	if result.Name != "Fund Fundamentals & Efficiency" {
		t.Errorf("Name = %v, want Fund Fundamentals & Efficiency", result.Name)
	}
}

func TestValuationComputer_ExpensiveSmallFund(t *testing.T) {
	computer := NewValuationComputer()

	overview := &models.Overview{
		Ticker:          "TINY",
		Kind:            models.AssetKindFund,
		ExpenseRatio:    0.95,
		AUM:             50e6,
		PremiumDiscount: 0.08,
		TrackingError:   0.90,
		YTDReturn:       -12,
	}

	result := computer.Compute(overview)

	// -1 - 0.5 - 0.5 - 0.5 - 0.5 = -3, clamped to -2
	if result.Score != -2 {
		t.Errorf("Score = %v, want -2 for an expensive illiquid fund in decline", result.Score)
	}
}

func TestScoreMetric_Bands(t *testing.T) {
	tests := []struct {
		value  float64
		median float64
		want   float64
	}{
		{10, 20, 1},     // ratio 0.5
		{15, 20, 0.5},   // ratio 0.75
		{20, 20, 0},     // ratio 1.0
		{26, 20, -0.5},  // ratio 1.3
		{40, 20, -1},    // ratio 2.0
		{0, 20, 0},      // unavailable
		{-5, 20, 0},     // negative earnings
	}

	for _, tt := range tests {
		got, _ := scoreMetric(tt.value, tt.median, "P/E Ratio")
		if got != tt.want {
			t.Errorf("scoreMetric(%v, %v) = %v, want %v", tt.value, tt.median, got, tt.want)
		}
	}
}
