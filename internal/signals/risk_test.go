package signals

import (
	"strings"
	"testing"

	"github.com/ternarybob/conflux/internal/models"
)

func TestRiskComputer_NoData(t *testing.T) {
	computer := NewRiskComputer()

	result := computer.Compute(nil)

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if result.Label != "No Data" {
		t.Errorf("Label = %v, want No Data", result.Label)
	}
}

func TestRiskComputer_DefensiveProfile(t *testing.T) {
	computer := NewRiskComputer()

	profile := &models.RiskProfile{
		Beta:                 floatPtr(0.7),
		HistoricalVolatility: floatPtr(0.15),
		MaxDrawdown:          floatPtr(-0.10),
		DebtToEquity:         floatPtr(0.2),
	}

	result := computer.Compute(profile)

	// 0.5 + 0.5 + 0.5 + 0.5 = 2
	if result.Score != 2 {
		t.Errorf("Score = %v, want 2", result.Score)
	}
	if result.Label != "Low Risk" {
		t.Errorf("Label = %v, want Low Risk", result.Label)
	}
}

func TestRiskComputer_HighRiskProfile(t *testing.T) {
	computer := NewRiskComputer()

	profile := &models.RiskProfile{
		Beta:                 floatPtr(2.1),
		HistoricalVolatility: floatPtr(0.60),
		MaxDrawdown:          floatPtr(-0.55),
		DebtToEquity:         floatPtr(2.5),
	}

	result := computer.Compute(profile)

	// -0.5 * 4 = -2
	if result.Score != -2 {
		t.Errorf("Score = %v, want -2", result.Score)
	}
	if result.Label != "High Risk" {
		t.Errorf("Label = %v, want High Risk", result.Label)
	}
}

func TestRiskComputer_MissingFieldsSkipped(t *testing.T) {
	computer := NewRiskComputer()

	// Funds typically carry no debt-to-equity and beta may be absent
	profile := &models.RiskProfile{
		HistoricalVolatility: floatPtr(0.25),
		MaxDrawdown:          floatPtr(-0.20),
	}

	result := computer.Compute(profile)

	// vol 0.25 + drawdown 0 = 0.25, rounds to 0.5
	if result.Score != 0.5 {
		t.Errorf("Score = %v, want 0.5", result.Score)
	}
	if result.Components["beta_score"].(float64) != 0 {
		t.Error("beta_score should be 0 when beta is unavailable")
	}
	if !strings.Contains(result.Explanation, "excluded from scoring") {
		t.Errorf("Explanation should name the skipped metrics, got %q", result.Explanation)
	}
	if !strings.Contains(result.Explanation, "beta") {
		t.Errorf("Explanation should mention beta as skipped, got %q", result.Explanation)
	}
}

func TestRiskComputer_ModerateProfile(t *testing.T) {
	computer := NewRiskComputer()

	profile := &models.RiskProfile{
		Beta:                 floatPtr(1.1),
		HistoricalVolatility: floatPtr(0.35),
		MaxDrawdown:          floatPtr(-0.30),
		DebtToEquity:         floatPtr(0.6),
	}

	result := computer.Compute(profile)

	// 0.25 - 0.25 - 0.25 + 0.25 = 0
	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if result.Label != "Moderate Risk" {
		t.Errorf("Label = %v, want Moderate Risk", result.Label)
	}
}

func TestRiskLabel_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{2, "Low Risk"},
		{1.5, "Low Risk"},
		{1, "Moderate-Low Risk"},
		{0, "Moderate Risk"},
		{-1, "Elevated Risk"},
		{-2, "High Risk"},
	}

	for _, tt := range tests {
		if got := riskLabel(tt.score); got != tt.want {
			t.Errorf("riskLabel(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
