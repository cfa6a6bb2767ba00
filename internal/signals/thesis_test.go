package signals

import (
	"testing"

	"github.com/ternarybob/conflux/internal/models"
)

func TestThesisComputer_NoMembership(t *testing.T) {
	computer := NewThesisComputer()

	if result := computer.Compute(nil); result != nil {
		t.Errorf("Compute(nil) = %v, want nil for assets outside the thesis universe", result)
	}
}

func TestThesisComputer_AvoidList(t *testing.T) {
	computer := NewThesisComputer()

	membership := &models.ThesisMembership{
		Ticker:    "SOXL",
		Avoid:     true,
		Rationale: "Leveraged products decay and are unsuitable for long holding periods.",
	}

	result := computer.Compute(membership)

	if result == nil {
		t.Fatal("Compute should return a signal for avoid-list assets")
	}
	if result.Score != -2 {
		t.Errorf("Score = %v, want -2", result.Score)
	}
	if result.Label != "Avoid" {
		t.Errorf("Label = %v, want Avoid", result.Label)
	}
}

func TestThesisComputer_TierScores(t *testing.T) {
	computer := NewThesisComputer()

	tests := []struct {
		ticker string
		tier   int
		want   float64
	}{
		{"SMH", 1, 2},    // 1.5 + 0.5
		{"NLR", 2, 2},    // 1.25 + 0.5, rounds to 2
		{"DTCR", 3, 1.5}, // 1.0 + 0.25, rounds to 1.5
		{"VOO", 4, 0.5},  // 0.5, no bonus
		{"QQQ", 4, 0.5},  // 0.5 - 0.25, rounds to 0.5
		{"XLV", 5, 0},    // 0.25 - 0.25
	}

	for _, tt := range tests {
		membership := &models.ThesisMembership{
			Ticker:   tt.ticker,
			Tier:     tt.tier,
			TierName: "Test Tier",
			Priority: "Medium",
		}
		result := computer.Compute(membership)
		if result == nil {
			t.Fatalf("Compute(%s) returned nil", tt.ticker)
		}
		if result.Score != tt.want {
			t.Errorf("Compute(%s tier %d).Score = %v, want %v", tt.ticker, tt.tier, result.Score, tt.want)
		}
	}
}

func TestThesisComputer_QQQMPenalty(t *testing.T) {
	computer := NewThesisComputer()

	qqqm := computer.Compute(&models.ThesisMembership{Ticker: "QQQM", Tier: 4})
	voo := computer.Compute(&models.ThesisMembership{Ticker: "VOO", Tier: 4})

	qqqmBonus := qqqm.Components["bonus"].(float64)
	vooBonus := voo.Components["bonus"].(float64)
	if qqqmBonus != -0.25 {
		t.Errorf("QQQM bonus = %v, want -0.25", qqqmBonus)
	}
	if vooBonus != 0 {
		t.Errorf("VOO bonus = %v, want 0", vooBonus)
	}
}

func TestThesisLabel_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{2, "Strongly Aligned"},
		{1.5, "Strongly Aligned"},
		{1, "Aligned"},
		{0.5, "Weakly Aligned"},
		{0, "Misaligned"},
		{-2, "Strongly Misaligned"},
	}

	for _, tt := range tests {
		if got := thesisLabel(tt.score); got != tt.want {
			t.Errorf("thesisLabel(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
