// Package overlap measures portfolio concentration across funds by comparing
// top-holding weights between a target fund and its peers.
package overlap

import (
	"math"
	"sort"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// HoldingsSource supplies top holdings per fund and the universe of funds to
// compare against.
type HoldingsSource interface {
	FundTickers() []string
	TopHoldings(ticker string) (*models.FundHoldings, bool)
}

// Analyzer computes pairwise holding overlap against a holdings source.
type Analyzer struct {
	source HoldingsSource
}

// NewAnalyzer creates an overlap analyzer backed by a holdings source
func NewAnalyzer(source HoldingsSource) *Analyzer {
	return &Analyzer{source: source}
}

// Compute compares the target fund's holdings against every other fund in the
// source. When targetHoldings is nil the source's holdings for the ticker are
// used. Returns nil when the target's holdings cannot be resolved.
func (a *Analyzer) Compute(ticker string, targetHoldings []models.Holding) []models.OverlapRecord {
	ticker = strings.ToUpper(ticker)

	if targetHoldings == nil {
		target, ok := a.source.TopHoldings(ticker)
		if !ok || len(target.Holdings) == 0 {
			return nil
		}
		targetHoldings = target.Holdings
	}

	targetWeights := make(map[string]float64, len(targetHoldings))
	for _, h := range targetHoldings {
		targetWeights[h.Ticker] = h.Weight
	}

	records := []models.OverlapRecord{}
	for _, otherTicker := range a.source.FundTickers() {
		if otherTicker == ticker {
			continue
		}

		other, ok := a.source.TopHoldings(otherTicker)
		if !ok || len(other.Holdings) == 0 {
			continue
		}

		shared := []models.SharedHolding{}
		for _, h := range other.Holdings {
			if weight, found := targetWeights[h.Ticker]; found {
				shared = append(shared, models.SharedHolding{
					Ticker:         h.Ticker,
					WeightInTarget: weight,
					WeightInOther:  h.Weight,
				})
			}
		}

		// A single shared mega-cap is noise, not overlap
		if len(shared) < 2 {
			continue
		}

		var weightInTarget, weightInOther float64
		for _, h := range shared {
			weightInTarget += h.WeightInTarget
			weightInOther += h.WeightInOther
		}
		overlapPct := (weightInTarget + weightInOther) / 2

		sort.Slice(shared, func(i, j int) bool {
			return shared[i].WeightInTarget > shared[j].WeightInTarget
		})

		records = append(records, models.OverlapRecord{
			Ticker:         otherTicker,
			Name:           other.Name,
			SharedCount:    len(shared),
			OverlapPct:     math.Round(overlapPct*10) / 10,
			SharedHoldings: shared,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].OverlapPct > records[j].OverlapPct
	})
	return records
}
