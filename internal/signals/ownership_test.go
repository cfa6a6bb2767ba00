package signals

import (
	"testing"

	"github.com/ternarybob/conflux/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestOwnershipComputer_NoData(t *testing.T) {
	computer := NewOwnershipComputer()

	result := computer.Compute(models.AssetKindStock, nil)

	if result.Label != "No Data" {
		t.Errorf("Label = %v, want No Data", result.Label)
	}
}

func TestOwnershipComputer_NetInsiderBuying(t *testing.T) {
	computer := NewOwnershipComputer()

	activity := &models.OwnershipActivity{
		InsiderTransactions: []models.InsiderTransaction{
			{Type: "buy", Value: 8e6},
			{Type: "buy", Value: 4e6},
			{Type: "sell", Value: 5e6},
		},
		InstitutionalOwnership:      floatPtr(0.74),
		InstitutionalOwnershipPrior: floatPtr(0.70),
	}

	result := computer.Compute(models.AssetKindStock, activity)

	// insider 0.75 + ownership 0.5 + change 0.5 = 1.75, rounds to 2
	if result.Score != 2 {
		t.Errorf("Score = %v, want 2", result.Score)
	}

	insiderScore := result.Components["insider_score"].(float64)
	if insiderScore != 0.75 {
		t.Errorf("insider_score = %v, want 0.75 when buys exceed half of sells", insiderScore)
	}
}

func TestOwnershipComputer_HeavySelling(t *testing.T) {
	computer := NewOwnershipComputer()

	activity := &models.OwnershipActivity{
		InsiderTransactions: []models.InsiderTransaction{
			{Type: "sell", Value: 25e6},
		},
	}

	result := computer.Compute(models.AssetKindStock, activity)

	insiderScore := result.Components["insider_score"].(float64)
	if insiderScore != -0.5 {
		t.Errorf("insider_score = %v, want -0.5 for sales above $10M with no buying", insiderScore)
	}
}

func TestOwnershipComputer_NoTransactions(t *testing.T) {
	computer := NewOwnershipComputer()

	result := computer.Compute(models.AssetKindStock, &models.OwnershipActivity{})

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if result.Explanation != "No recent insider transactions detected." {
		t.Errorf("Explanation = %q, want the no-transactions message", result.Explanation)
	}
}

func TestOwnershipComputer_MissingInstitutionalDataSkipped(t *testing.T) {
	computer := NewOwnershipComputer()

	// No institutional fields at all: only the insider component should score
	activity := &models.OwnershipActivity{
		InsiderTransactions: []models.InsiderTransaction{
			{Type: "sell", Value: 2e6},
		},
	}

	result := computer.Compute(models.AssetKindStock, activity)

	if result.Components["ownership_score"].(float64) != 0 {
		t.Error("ownership_score should be 0 when institutional ownership is unavailable")
	}
	if result.Components["ownership_change_score"].(float64) != 0 {
		t.Error("ownership_change_score should be 0 without prior-quarter data")
	}
	// Only the -0.25 moderate-selling component applies, which rounds to -0.5
	if result.Score != -0.5 && result.Score != 0 {
		t.Errorf("Score = %v, want the insider component alone", result.Score)
	}
}

func TestOwnershipComputer_InstitutionalReduction(t *testing.T) {
	computer := NewOwnershipComputer()

	activity := &models.OwnershipActivity{
		InstitutionalOwnership:      floatPtr(0.45),
		InstitutionalOwnershipPrior: floatPtr(0.50),
	}

	result := computer.Compute(models.AssetKindStock, activity)

	changeScore := result.Components["ownership_change_score"].(float64)
	if changeScore != -0.5 {
		t.Errorf("ownership_change_score = %v, want -0.5 for a 5pp drop", changeScore)
	}
}

func TestOwnershipComputer_FundStrongInflows(t *testing.T) {
	computer := NewOwnershipComputer()

	activity := &models.OwnershipActivity{
		NetFlows30D:             800e6,
		NetFlows90D:             1200e6,
		CreationRedemptionRatio: 1.4,
	}

	result := computer.Compute(models.AssetKindFund, activity)

	// flows 0.75 + cr 0.5 + accel (800/400 = 2x) 0.5 = 1.75, rounds to 2
	if result.Score != 2 {
		t.Errorf("Score = %v, want 2", result.Score)
	}
	if result.Name != "Fund Flows & Holdings" {
		t.Errorf("Name = %v, want Fund Flows & Holdings", result.Name)
	}
}

func TestOwnershipComputer_FundRedemptionPressure(t *testing.T) {
	computer := NewOwnershipComputer()

	activity := &models.OwnershipActivity{
		NetFlows30D:             -900e6,
		NetFlows90D:             -1200e6,
		CreationRedemptionRatio: 0.6,
	}

	result := computer.Compute(models.AssetKindFund, activity)

	// flows -0.75 + cr -0.5 + accel (ratio 2.25 vs negative flows: no band) = -1.25
	if result.Score != -1.5 && result.Score != -1 {
		t.Errorf("Score = %v, want around -1.25 rounded to the half grid", result.Score)
	}
	flowScore := result.Components["flow_score_30d"].(float64)
	if flowScore != -0.75 {
		t.Errorf("flow_score_30d = %v, want -0.75 for heavy outflows", flowScore)
	}
}

func TestOwnershipComputer_FundAccelerationRequiresHistory(t *testing.T) {
	computer := NewOwnershipComputer()

	// Zero 90-day flows: acceleration cannot be computed
	activity := &models.OwnershipActivity{
		NetFlows30D:             100e6,
		NetFlows90D:             0,
		CreationRedemptionRatio: 1.0,
	}

	result := computer.Compute(models.AssetKindFund, activity)

	if result.Components["accel_score"].(float64) != 0 {
		t.Error("accel_score should be 0 when 90-day flows are unavailable")
	}
}
