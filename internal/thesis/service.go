// Package thesis holds the investment thesis reference data: tiered fund
// universes with conviction levels, loadable from YAML with built-in defaults.
package thesis

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/conflux/internal/models"
)

// tiersFile is the on-disk shape of the thesis definition.
type tiersFile struct {
	Summary string              `yaml:"summary" validate:"required"`
	Tiers   []models.ThesisTier `yaml:"tiers" validate:"required,min=1,dive"`
}

// Service answers tier membership queries for tickers.
type Service struct {
	summary  string
	tiers    []models.ThesisTier
	byTicker map[string]models.ThesisMembership
	logger   arbor.ILogger
}

// NewService builds a thesis service. When path is empty or the file is
// missing, the built-in tier definitions are used.
func NewService(path string, logger arbor.ILogger) (*Service, error) {
	summary, tiers := defaultThesis()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var file tiersFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("failed to parse thesis file %s: %w", path, err)
			}
			if err := validator.New().Struct(&file); err != nil {
				return nil, fmt.Errorf("invalid thesis file %s: %w", path, err)
			}
			summary = file.Summary
			tiers = file.Tiers
			logger.Info().Str("path", path).Int("tiers", len(tiers)).Msg("Thesis tiers loaded from file")
		case os.IsNotExist(err):
			logger.Info().Str("path", path).Msg("Thesis file not found - using built-in tiers")
		default:
			return nil, fmt.Errorf("failed to read thesis file %s: %w", path, err)
		}
	}

	s := &Service{
		summary:  summary,
		tiers:    tiers,
		byTicker: make(map[string]models.ThesisMembership),
		logger:   logger,
	}
	for _, tier := range tiers {
		for _, ticker := range tier.Tickers {
			s.byTicker[strings.ToUpper(ticker)] = models.ThesisMembership{
				Ticker:    strings.ToUpper(ticker),
				Tier:      tier.Tier,
				TierName:  tier.Name,
				Priority:  tier.Priority,
				Rationale: tier.Rationale,
				Avoid:     tier.Tier == 0,
			}
		}
	}
	return s, nil
}

// Membership returns the tier membership for a ticker, or nil when the ticker
// is outside the thesis universe.
func (s *Service) Membership(ticker string) *models.ThesisMembership {
	m, ok := s.byTicker[strings.ToUpper(ticker)]
	if !ok {
		return nil
	}
	return &m
}

// Summary returns the thesis summary paragraph
func (s *Service) Summary() string {
	return s.summary
}

// Tiers returns the full tier definitions
func (s *Service) Tiers() []models.ThesisTier {
	return s.tiers
}

// Tickers returns every ticker in the thesis universe, avoid list included
func (s *Service) Tickers() []string {
	out := make([]string, 0, len(s.byTicker))
	for _, tier := range s.tiers {
		for _, ticker := range tier.Tickers {
			out = append(out, strings.ToUpper(ticker))
		}
	}
	return out
}

// defaultThesis is the built-in AI infrastructure tier set.
func defaultThesis() (string, []models.ThesisTier) {
	summary := "This thesis prioritizes the physical infrastructure layer of AI - silicon, power, and data centers - over the software and application layer. The core conviction is that compute hardware and energy supply are the binding constraints on AI scaling, and companies solving those bottlenecks will capture disproportionate value. Allocations are tiered from concentrated hardware bets (Tier 1) through broad diversification (Tier 4) to speculative healthcare plays (Tier 5)."

	tiers := []models.ThesisTier{
		{
			Tier:      1,
			Name:      "Semiconductor & Compute Hardware",
			Priority:  "Core",
			Rationale: "GPUs, ASICs, and advanced packaging are the foundational bottleneck for AI scaling. Every AI workload begins with silicon. These ETFs provide direct exposure to the companies designing and manufacturing AI accelerators.",
			Tickers:   []string{"SMH", "SOXX", "SOXQ", "PSI", "CHPX"},
		},
		{
			Tier:      2,
			Name:      "Power & Energy Infrastructure",
			Priority:  "High",
			Rationale: "AI data centers are power-hungry: a single large GPU cluster can draw 100+ MW. The buildout of nuclear, renewable, and grid infrastructure is the second-order bottleneck. These ETFs capture the energy supply chain that AI scaling depends on.",
			Tickers:   []string{"IPWR", "NLR", "TNUK", "ICLN"},
		},
		{
			Tier:      3,
			Name:      "Data Center & Digital Infrastructure",
			Priority:  "Medium-High",
			Rationale: "Physical data center REITs, cooling systems, and networking hardware form the connective tissue of AI infrastructure. Less direct than silicon but essential for deployment at scale.",
			Tickers:   []string{"DTCR", "IDGT"},
		},
		{
			Tier:      4,
			Name:      "Broad Tech & Market Indices",
			Priority:  "Medium",
			Rationale: "Broad tech and market ETFs provide diversified AI exposure through mega-cap holdings (NVDA, MSFT, GOOGL, AMZN) while diluting the thesis with SaaS, ad-tech, and non-AI businesses. Useful as a base layer but not a concentrated bet.",
			Tickers:   []string{"QQQM", "QQQ", "VOO", "SPY", "VTI", "VGT", "FTEC"},
		},
		{
			Tier:      5,
			Name:      "Healthcare & Biotech",
			Priority:  "Low",
			Rationale: "AI is transforming drug discovery, genomics, and diagnostics, but these ETFs carry significant biotech pipeline risk and regulatory uncertainty. A speculative satellite allocation for long-duration AI-in-healthcare conviction.",
			Tickers:   []string{"XLV", "VHT", "IBB", "XBI", "BBH", "ARKG"},
		},
		{
			Tier:      0,
			Name:      "Avoid - Structural Headwinds",
			Priority:  "Avoid",
			Rationale: "These ETFs are either over-concentrated in SaaS companies facing AI disruption (IGV, CLOU) or use leveraged structures that introduce decay and path-dependency risk (SOXL). The thesis actively recommends against holding these.",
			Tickers:   []string{"IGV", "CLOU", "SOXL"},
		},
	}
	return summary, tiers
}
