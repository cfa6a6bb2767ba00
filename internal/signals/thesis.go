package signals

import (
	"fmt"

	"github.com/ternarybob/conflux/internal/models"
)

// ThesisComputer scores how well an asset aligns with the configured
// investment thesis tiers. Assets with no tier membership produce no signal.
type ThesisComputer struct{}

// NewThesisComputer creates a new thesis computer
func NewThesisComputer() *ThesisComputer {
	return &ThesisComputer{}
}

var tierScores = map[int]float64{
	1: 1.5,
	2: 1.25,
	3: 1.0,
	4: 0.5,
	5: 0.25,
}

// Compute scores thesis alignment. Returns nil when the asset is not part of
// the thesis universe so it contributes nothing to convergence.
func (c *ThesisComputer) Compute(membership *models.ThesisMembership) *models.Signal {
	if membership == nil {
		return nil
	}

	if membership.Avoid {
		return &models.Signal{
			ID:    models.SignalThesis,
			Name:  "Thesis Alignment",
			Score: -2,
			Label: "Avoid",
			Explanation: fmt.Sprintf(
				"%s is on the avoid list: %s", membership.Ticker, membership.Rationale),
			Components: map[string]interface{}{
				"tier":     membership.Tier,
				"priority": membership.Priority,
				"avoid":    true,
			},
		}
	}

	total := tierScores[membership.Tier]

	// Tier bonuses sharpen the separation between conviction levels
	bonus := 0.0
	switch membership.Tier {
	case 1, 2:
		bonus = 0.5
	case 3:
		bonus = 0.25
	case 4:
		// Broad index funds dilute the thesis even within their tier
		if membership.Ticker == "QQQ" || membership.Ticker == "QQQM" {
			bonus = -0.25
		}
	case 5:
		bonus = -0.25
	}
	total += bonus

	score := finalScore(total)

	return &models.Signal{
		ID:    models.SignalThesis,
		Name:  "Thesis Alignment",
		Score: score,
		Label: thesisLabel(score),
		Explanation: fmt.Sprintf(
			"%s is in tier %d (%s, %s priority): %s",
			membership.Ticker, membership.Tier, membership.TierName, membership.Priority, membership.Rationale),
		Components: map[string]interface{}{
			"tier":       membership.Tier,
			"tier_name":  membership.TierName,
			"priority":   membership.Priority,
			"tier_score": tierScores[membership.Tier],
			"bonus":      bonus,
		},
	}
}

func thesisLabel(score float64) string {
	switch {
	case score >= 1.5:
		return "Strongly Aligned"
	case score >= 1.0:
		return "Aligned"
	case score >= 0.5:
		return "Weakly Aligned"
	case score >= -0.5:
		return "Misaligned"
	default:
		return "Strongly Misaligned"
	}
}
