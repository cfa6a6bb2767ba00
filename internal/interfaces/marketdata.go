package interfaces

import (
	"context"

	"github.com/ternarybob/conflux/internal/models"
)

// MarketDataService acquires per-ticker market data with cache, admission
// budget, and mock fallback behind every call.
type MarketDataService interface {
	// DailyPrices returns the daily OHLCV series, oldest first
	DailyPrices(ctx context.Context, ticker string) ([]models.PriceBar, models.Provenance, error)

	// CompanyOverview returns fundamentals for a ticker
	CompanyOverview(ctx context.Context, ticker string) (*models.Overview, models.Provenance, error)

	// AnalystData returns the analyst/ratings snapshot
	AnalystData(ctx context.Context, ticker string) (*models.AnalystSnapshot, models.Provenance, error)

	// OwnershipData returns insider transactions or fund flow activity
	OwnershipData(ctx context.Context, ticker string) (*models.OwnershipActivity, models.Provenance, error)

	// RiskData returns the risk profile
	RiskData(ctx context.Context, ticker string) (*models.RiskProfile, models.Provenance, error)

	// AssetKind classifies a ticker as stock or fund
	AssetKind(ticker string) models.AssetKind

	// UsingMockData reports whether live acquisition is configured
	UsingMockData() bool

	// RateLimitStatus exposes the provider admission budget
	RateLimitStatus() models.RateLimitStatus

	// ClearCache drops all cached provider responses
	ClearCache()

	// UpdateKeys swaps provider credentials at runtime
	UpdateKeys(alphaVantageKey, finnhubKey string)

	// FundTickers lists the fund universe with detailed holdings
	FundTickers() []string

	// TopHoldings returns a fund's holdings list
	TopHoldings(ticker string) (*models.FundHoldings, bool)
}

// ThesisService answers thesis tier membership queries.
type ThesisService interface {
	// Membership returns nil for tickers outside the thesis universe
	Membership(ticker string) *models.ThesisMembership

	// Summary returns the thesis summary paragraph
	Summary() string

	// Tiers returns the full tier definitions
	Tiers() []models.ThesisTier

	// Tickers returns every ticker in the thesis universe
	Tickers() []string
}

// HistoryStore persists and reconciles daily score snapshots.
type HistoryStore interface {
	// Load reads the logged entries for a ticker, oldest first
	Load(ticker string) ([]models.HistoryEntry, error)

	// Append records an entry, replacing any same-date entry
	Append(ticker string, entry models.HistoryEntry) error
}
