package marketdata

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/ternarybob/conflux/internal/models"
)

// GeneratePriceHistory produces a deterministic random-walk daily series for a
// ticker. Weekends are skipped. The same ticker always yields the same series
// within a process run so cached analyses stay consistent.
func GeneratePriceHistory(ticker string, basePrice, volatility, trend float64, days int) []models.PriceBar {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(ticker)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := basePrice * (1 - trend*float64(days)*0.001)
	now := time.Now().UTC().Truncate(24 * time.Hour)

	bars := make([]models.PriceBar, 0, days)
	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		change := (rng.Float64() - 0.48 + trend*0.01) * volatility
		price = price * (1 + change/100)
		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   round2(price * (1 - rng.Float64()*0.005)),
			High:   round2(price * (1 + rng.Float64()*0.015)),
			Low:    round2(price * (1 - rng.Float64()*0.015)),
			Close:  round2(price),
			Volume: math.Floor(40000000 + rng.Float64()*60000000),
		})
	}
	return bars
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MockAsset is a full synthetic dataset for one ticker.
type MockAsset struct {
	Overview  models.Overview
	Bars      []models.PriceBar
	Analyst   models.AnalystSnapshot
	Ownership models.OwnershipActivity
	Risk      models.RiskProfile
}

// MockCatalog holds the built-in synthetic datasets used when no provider key
// is configured or a provider has no coverage for a ticker.
type MockCatalog struct {
	stocks map[string]*MockAsset
	funds  map[string]*MockAsset
}

// Stock returns the mock dataset for a stock ticker
func (m *MockCatalog) Stock(ticker string) (*MockAsset, bool) {
	asset, ok := m.stocks[strings.ToUpper(ticker)]
	return asset, ok
}

// Fund returns the mock dataset for a fund ticker
func (m *MockCatalog) Fund(ticker string) (*MockAsset, bool) {
	asset, ok := m.funds[strings.ToUpper(ticker)]
	return asset, ok
}

// IsFund reports whether the ticker belongs to the fund universe
func (m *MockCatalog) IsFund(ticker string) bool {
	_, ok := m.funds[strings.ToUpper(ticker)]
	return ok
}

// FundTickers lists the fund universe in a stable order
func (m *MockCatalog) FundTickers() []string {
	return append([]string(nil), fundOrder...)
}

// TopHoldings returns the holdings list for a fund, satisfying
// overlap.HoldingsSource.
func (m *MockCatalog) TopHoldings(ticker string) (*models.FundHoldings, bool) {
	asset, ok := m.Fund(ticker)
	if !ok || len(asset.Ownership.TopHoldings) == 0 {
		return nil, false
	}
	return &models.FundHoldings{
		Ticker:   strings.ToUpper(ticker),
		Name:     asset.Overview.Name,
		Holdings: asset.Ownership.TopHoldings,
	}, true
}

// GenericFund synthesizes a plausible mid-sized thematic fund dataset for a
// ticker outside the detailed catalog. Holdings are omitted, so overlap
// analysis skips these funds.
func (m *MockCatalog) GenericFund(ticker string) *MockAsset {
	ticker = strings.ToUpper(ticker)
	return &MockAsset{
		Overview: models.Overview{
			Ticker:          ticker,
			Name:            ticker + " ETF",
			Kind:            models.AssetKindFund,
			ExpenseRatio:    0.45,
			AUM:             450e6,
			PremiumDiscount: 0.005,
			TrackingError:   0.35,
			YTDReturn:       4.0,
			HoldingsCount:   40,
		},
		Bars: GeneratePriceHistory(ticker, 50, 1.8, 0.1, 200),
		Analyst: models.AnalystSnapshot{
			MorningstarRating: 3,
			CategoryRank:      45,
			InflowsOutflows:   20,
		},
		Ownership: models.OwnershipActivity{
			NetFlows30D:             10e6,
			NetFlows90D:             25e6,
			CreationRedemptionRatio: 1.0,
		},
		Risk: models.RiskProfile{
			Beta:                 floatRef(1.1),
			HistoricalVolatility: floatRef(0.28),
			MaxDrawdown:          floatRef(-0.24),
		},
	}
}

func floatRef(v float64) *float64 { return &v }

// NewMockCatalog builds the full synthetic catalog. Price histories are
// generated once up front.
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		stocks: buildStockMocks(),
		funds:  buildFundMocks(),
	}
}

func buildStockMocks() map[string]*MockAsset {
	return map[string]*MockAsset{
		"AAPL": {
			Overview: models.Overview{
				Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology",
				Industry: "Consumer Electronics", Kind: models.AssetKindStock,
				MarketCap: 2.9e12, PERatio: 28.5, PSRatio: 7.8, PFCFRatio: 26.2,
				DividendYield: 0.55, EPS: 6.42, RevenueGrowth: 0.08, EarningsGrowth: 0.11,
			},
			Bars: GeneratePriceHistory("AAPL", 182, 1.5, 0.3, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 28, Hold: 8, Sell: 2},
				CurrentPrice: 182, MedianTarget: 205,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 1.65, Estimate: 1.58},
					{Quarter: "Q4 2024", Actual: 2.18, Estimate: 2.11},
					{Quarter: "Q3 2024", Actual: 1.46, Estimate: 1.39},
					{Quarter: "Q2 2024", Actual: 1.40, Estimate: 1.35},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 5200000, Date: "2025-01-15"},
					{Type: "sell", Value: 3100000, Date: "2024-12-10"},
					{Type: "buy", Value: 250000, Date: "2024-11-20"},
				},
				InstitutionalOwnership:      floatRef(0.74),
				InstitutionalOwnershipPrior: floatRef(0.72),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(1.19),
				HistoricalVolatility: floatRef(0.24),
				MaxDrawdown:          floatRef(-0.18),
				DebtToEquity:         floatRef(1.76),
			},
		},
		"MSFT": {
			Overview: models.Overview{
				Ticker: "MSFT", Name: "Microsoft Corporation", Sector: "Technology",
				Industry: "Software - Infrastructure", Kind: models.AssetKindStock,
				MarketCap: 3.1e12, PERatio: 35.2, PSRatio: 13.1, PFCFRatio: 42.8,
				DividendYield: 0.72, EPS: 11.07, RevenueGrowth: 0.16, EarningsGrowth: 0.22,
			},
			Bars: GeneratePriceHistory("MSFT", 378, 1.8, 0.5, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 35, Hold: 5, Sell: 1},
				CurrentPrice: 378, MedianTarget: 430,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 3.12, Estimate: 2.94},
					{Quarter: "Q4 2024", Actual: 2.93, Estimate: 2.78},
					{Quarter: "Q3 2024", Actual: 2.99, Estimate: 2.82},
					{Quarter: "Q2 2024", Actual: 2.69, Estimate: 2.55},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 8500000, Date: "2025-01-20"},
					{Type: "buy", Value: 1200000, Date: "2024-12-15"},
					{Type: "buy", Value: 900000, Date: "2024-11-05"},
				},
				InstitutionalOwnership:      floatRef(0.73),
				InstitutionalOwnershipPrior: floatRef(0.70),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(0.89),
				HistoricalVolatility: floatRef(0.21),
				MaxDrawdown:          floatRef(-0.15),
				DebtToEquity:         floatRef(0.42),
			},
		},
		"GOOGL": {
			Overview: models.Overview{
				Ticker: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology",
				Industry: "Internet Content & Information", Kind: models.AssetKindStock,
				MarketCap: 1.9e12, PERatio: 24.1, PSRatio: 6.2, PFCFRatio: 23.5,
				DividendYield: 0.0, EPS: 5.80, RevenueGrowth: 0.13, EarningsGrowth: 0.18,
			},
			Bars: GeneratePriceHistory("GOOGL", 140, 2.0, 0.2, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 30, Hold: 10, Sell: 3},
				CurrentPrice: 140, MedianTarget: 165,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 1.91, Estimate: 1.82},
					{Quarter: "Q4 2024", Actual: 1.64, Estimate: 1.59},
					{Quarter: "Q3 2024", Actual: 1.55, Estimate: 1.45},
					{Quarter: "Q2 2024", Actual: 1.44, Estimate: 1.38},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 12000000, Date: "2025-01-08"},
					{Type: "sell", Value: 6500000, Date: "2024-12-01"},
					{Type: "sell", Value: 4200000, Date: "2024-10-22"},
				},
				InstitutionalOwnership:      floatRef(0.65),
				InstitutionalOwnershipPrior: floatRef(0.64),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(1.06),
				HistoricalVolatility: floatRef(0.27),
				MaxDrawdown:          floatRef(-0.22),
				DebtToEquity:         floatRef(0.10),
			},
		},
		"TSLA": {
			Overview: models.Overview{
				Ticker: "TSLA", Name: "Tesla, Inc.", Sector: "Consumer Cyclical",
				Industry: "Auto Manufacturers", Kind: models.AssetKindStock,
				MarketCap: 7.8e11, PERatio: 62.5, PSRatio: 8.1, PFCFRatio: 95.3,
				DividendYield: 0.0, EPS: 3.91, RevenueGrowth: 0.19, EarningsGrowth: -0.05,
			},
			Bars: GeneratePriceHistory("TSLA", 245, 3.5, -0.1, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 12, Hold: 15, Sell: 14},
				CurrentPrice: 245, MedianTarget: 198,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 0.85, Estimate: 0.95},
					{Quarter: "Q4 2024", Actual: 0.71, Estimate: 0.78},
					{Quarter: "Q3 2024", Actual: 0.72, Estimate: 0.60},
					{Quarter: "Q2 2024", Actual: 0.52, Estimate: 0.62},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 22000000, Date: "2025-01-10"},
					{Type: "sell", Value: 15000000, Date: "2024-11-28"},
					{Type: "sell", Value: 9000000, Date: "2024-10-15"},
				},
				InstitutionalOwnership:      floatRef(0.44),
				InstitutionalOwnershipPrior: floatRef(0.48),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(2.05),
				HistoricalVolatility: floatRef(0.55),
				MaxDrawdown:          floatRef(-0.42),
				DebtToEquity:         floatRef(0.69),
			},
		},
		"AMZN": {
			Overview: models.Overview{
				Ticker: "AMZN", Name: "Amazon.com, Inc.", Sector: "Consumer Cyclical",
				Industry: "Internet Retail", Kind: models.AssetKindStock,
				MarketCap: 1.85e12, PERatio: 58.3, PSRatio: 3.1, PFCFRatio: 48.2,
				DividendYield: 0.0, EPS: 3.17, RevenueGrowth: 0.12, EarningsGrowth: 0.35,
			},
			Bars: GeneratePriceHistory("AMZN", 178, 2.2, 0.4, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 38, Hold: 4, Sell: 1},
				CurrentPrice: 178, MedianTarget: 215,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 1.12, Estimate: 0.98},
					{Quarter: "Q4 2024", Actual: 1.29, Estimate: 1.15},
					{Quarter: "Q3 2024", Actual: 0.94, Estimate: 0.91},
					{Quarter: "Q2 2024", Actual: 1.26, Estimate: 1.03},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 4800000, Date: "2025-01-12"},
					{Type: "buy", Value: 2100000, Date: "2024-12-05"},
					{Type: "buy", Value: 1500000, Date: "2024-11-10"},
				},
				InstitutionalOwnership:      floatRef(0.63),
				InstitutionalOwnershipPrior: floatRef(0.60),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(1.14),
				HistoricalVolatility: floatRef(0.29),
				MaxDrawdown:          floatRef(-0.20),
				DebtToEquity:         floatRef(0.83),
			},
		},
		"META": {
			Overview: models.Overview{
				Ticker: "META", Name: "Meta Platforms, Inc.", Sector: "Technology",
				Industry: "Internet Content & Information", Kind: models.AssetKindStock,
				MarketCap: 1.3e12, PERatio: 29.8, PSRatio: 9.5, PFCFRatio: 24.1,
				DividendYield: 0.36, EPS: 17.41, RevenueGrowth: 0.22, EarningsGrowth: 0.65,
			},
			Bars: GeneratePriceHistory("META", 505, 2.8, 0.6, 200),
			Analyst: models.AnalystSnapshot{
				Ratings:      models.AnalystRatings{Buy: 42, Hold: 6, Sell: 2},
				CurrentPrice: 505, MedianTarget: 570,
				EarningsSurprises: []models.EarningsSurprise{
					{Quarter: "Q1 2025", Actual: 5.28, Estimate: 4.71},
					{Quarter: "Q4 2024", Actual: 5.33, Estimate: 4.96},
					{Quarter: "Q3 2024", Actual: 4.39, Estimate: 3.88},
					{Quarter: "Q2 2024", Actual: 5.16, Estimate: 4.73},
				},
			},
			Ownership: models.OwnershipActivity{
				InsiderTransactions: []models.InsiderTransaction{
					{Type: "sell", Value: 18000000, Date: "2025-01-18"},
					{Type: "sell", Value: 7500000, Date: "2024-12-20"},
					{Type: "buy", Value: 500000, Date: "2024-10-30"},
				},
				InstitutionalOwnership:      floatRef(0.78),
				InstitutionalOwnershipPrior: floatRef(0.75),
			},
			Risk: models.RiskProfile{
				Beta:                 floatRef(1.32),
				HistoricalVolatility: floatRef(0.35),
				MaxDrawdown:          floatRef(-0.25),
				DebtToEquity:         floatRef(0.31),
			},
		},
	}
}
