package marketdata

import (
	"context"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/singleflight"

	"github.com/ternarybob/conflux/internal/models"
)

// fetched pairs a cached value with where it came from, so repeat reads keep
// the original provenance.
type fetched struct {
	value      interface{}
	provenance models.Provenance
}

// Service is the acquisition layer: every data category flows cache-first,
// then live provider (inside the admission budget), then the mock catalog.
// Concurrent requests for the same key are collapsed via singleflight.
type Service struct {
	mu        sync.RWMutex
	av        *AlphaVantageClient
	fh        *FinnhubClient
	cache     *Cache
	admission *AdmissionController
	mocks     *MockCatalog
	logger    arbor.ILogger
	group     singleflight.Group

	// extraFunds are thesis-universe fund tickers without a detailed mock;
	// they resolve to a generic fund dataset instead of an unknown ticker.
	extraFunds map[string]bool
}

// NewService creates the acquisition service
func NewService(av *AlphaVantageClient, fh *FinnhubClient, cache *Cache,
	admission *AdmissionController, extraFundTickers []string, logger arbor.ILogger) *Service {
	extra := make(map[string]bool, len(extraFundTickers))
	for _, t := range extraFundTickers {
		extra[strings.ToUpper(t)] = true
	}
	return &Service{
		av:         av,
		fh:         fh,
		cache:      cache,
		admission:  admission,
		mocks:      NewMockCatalog(),
		logger:     logger,
		extraFunds: extra,
	}
}

// UpdateKeys swaps the provider clients when API keys change at runtime
func (s *Service) UpdateKeys(alphaVantageKey, finnhubKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.av = NewAlphaVantageClient(alphaVantageKey, WithLogger(s.logger))
	s.fh = NewFinnhubClient(finnhubKey, WithFinnhubLogger(s.logger))
	s.cache.Clear()
}

func (s *Service) avClient() *AlphaVantageClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.av
}

func (s *Service) fhClient() *FinnhubClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fh
}

// UsingMockData reports whether live price/fundamental acquisition is
// possible at all.
func (s *Service) UsingMockData() bool {
	return !s.avClient().HasKey()
}

// AssetKind classifies a ticker against the fund universe
func (s *Service) AssetKind(ticker string) models.AssetKind {
	ticker = strings.ToUpper(ticker)
	if s.mocks.IsFund(ticker) || s.extraFunds[ticker] {
		return models.AssetKindFund
	}
	return models.AssetKindStock
}

// RateLimitStatus exposes the admission budget state
func (s *Service) RateLimitStatus() models.RateLimitStatus {
	return s.admission.Status()
}

// ClearCache drops all cached provider responses
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// FundTickers lists the detailed fund universe, satisfying
// overlap.HoldingsSource.
func (s *Service) FundTickers() []string {
	return s.mocks.FundTickers()
}

// TopHoldings returns a fund's holdings, satisfying overlap.HoldingsSource.
func (s *Service) TopHoldings(ticker string) (*models.FundHoldings, bool) {
	return s.mocks.TopHoldings(ticker)
}

// fetch runs the chain for one cache key, collapsing concurrent callers.
func (s *Service) fetch(key string, fn func() (fetched, error)) (fetched, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached.(fetched), nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Re-check under singleflight: a concurrent caller may have filled it
		if cached, ok := s.cache.Get(key); ok {
			return cached.(fetched), nil
		}
		f, err := fn()
		if err != nil {
			return fetched{}, err
		}
		s.cache.Set(key, f)
		return f, nil
	})
	if err != nil {
		return fetched{}, err
	}
	return result.(fetched), nil
}

// acquireLive claims an admission slot for one provider call. A false return
// means the daily budget is spent and the caller should fall back.
func (s *Service) acquireLive(ctx context.Context) (bool, error) {
	ok, err := s.admission.Acquire(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Warn().Msg("Daily provider budget exhausted - falling back to cached/mock data")
	}
	return ok, nil
}

// provider is one step of an acquisition chain. A step yields a result,
// passes (ok=false, nil error) so the walk continues, or aborts the chain
// with an error.
type provider struct {
	name string
	run  func(ctx context.Context, ticker string) (fetched, bool, error)
}

// runChain walks an ordered provider list and returns the first result.
// Exhausting the chain yields the category's empty value with mock
// provenance; evaluators treat that as no data.
func (s *Service) runChain(ctx context.Context, ticker string, chain []provider, empty interface{}) (fetched, error) {
	for _, p := range chain {
		f, ok, err := p.run(ctx, ticker)
		if err != nil {
			return fetched{}, err
		}
		if ok {
			s.logger.Debug().Str("ticker", ticker).Str("provider", p.name).Msg("Acquisition resolved")
			return f, nil
		}
	}
	return fetched{value: empty, provenance: models.ProvenanceMock}, nil
}

// liveDailyPrices fetches the daily series from Alpha Vantage inside the
// admission budget.
func (s *Service) liveDailyPrices(ctx context.Context, ticker string) (fetched, bool, error) {
	av := s.avClient()
	if !av.HasKey() {
		return fetched{}, false, nil
	}
	ok, err := s.acquireLive(ctx)
	if err != nil || !ok {
		return fetched{}, false, err
	}
	bars, err := av.DailyPrices(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Live price fetch failed - trying mock data")
		return fetched{}, false, nil
	}
	if len(bars) == 0 {
		return fetched{}, false, nil
	}
	return fetched{value: bars, provenance: models.ProvenanceLive}, true, nil
}

// liveOverview fetches fundamentals from Alpha Vantage. Live overview only
// covers stocks; fund fundamentals come from mocks.
func (s *Service) liveOverview(ctx context.Context, ticker string) (fetched, bool, error) {
	av := s.avClient()
	if !av.HasKey() || s.AssetKind(ticker) != models.AssetKindStock {
		return fetched{}, false, nil
	}
	ok, err := s.acquireLive(ctx)
	if err != nil || !ok {
		return fetched{}, false, err
	}
	overview, err := av.CompanyOverview(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Live overview fetch failed - trying mock data")
		return fetched{}, false, nil
	}
	if overview == nil {
		return fetched{}, false, nil
	}
	return fetched{value: overview, provenance: models.ProvenanceLive}, true, nil
}

// liveInsiders fetches insider transactions from Finnhub inside the same
// admission budget as the Alpha Vantage calls. The result is partial since
// the free tier has no institutional ownership figures.
func (s *Service) liveInsiders(ctx context.Context, ticker string) (fetched, bool, error) {
	fh := s.fhClient()
	if !fh.HasKey() || s.AssetKind(ticker) != models.AssetKindStock {
		return fetched{}, false, nil
	}
	ok, err := s.acquireLive(ctx)
	if err != nil || !ok {
		return fetched{}, false, err
	}
	activity, err := fh.InsiderTransactions(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Live insider fetch failed - trying mock data")
		return fetched{}, false, nil
	}
	if activity == nil {
		return fetched{}, false, nil
	}
	return fetched{value: activity, provenance: models.ProvenancePartial}, true, nil
}

func (s *Service) mockBars(_ context.Context, ticker string) (fetched, bool, error) {
	asset, ok := s.mockFor(ticker)
	if !ok {
		return fetched{}, false, nil
	}
	return fetched{value: asset.Bars, provenance: models.ProvenanceMock}, true, nil
}

func (s *Service) mockOverview(_ context.Context, ticker string) (fetched, bool, error) {
	asset, ok := s.mockFor(ticker)
	if !ok {
		return fetched{}, false, nil
	}
	overview := asset.Overview
	return fetched{value: &overview, provenance: models.ProvenanceMock}, true, nil
}

func (s *Service) mockAnalyst(_ context.Context, ticker string) (fetched, bool, error) {
	asset, ok := s.mockFor(ticker)
	if !ok {
		return fetched{}, false, nil
	}
	snapshot := asset.Analyst
	return fetched{value: &snapshot, provenance: models.ProvenanceMock}, true, nil
}

func (s *Service) mockOwnership(_ context.Context, ticker string) (fetched, bool, error) {
	asset, ok := s.mockFor(ticker)
	if !ok {
		return fetched{}, false, nil
	}
	activity := asset.Ownership
	return fetched{value: &activity, provenance: models.ProvenanceMock}, true, nil
}

func (s *Service) mockRisk(_ context.Context, ticker string) (fetched, bool, error) {
	asset, ok := s.mockFor(ticker)
	if !ok {
		return fetched{}, false, nil
	}
	profile := asset.Risk
	return fetched{value: &profile, provenance: models.ProvenanceMock}, true, nil
}

// DailyPrices returns the daily OHLCV series for a ticker, oldest first.
func (s *Service) DailyPrices(ctx context.Context, ticker string) ([]models.PriceBar, models.Provenance, error) {
	ticker = strings.ToUpper(ticker)
	chain := []provider{
		{name: "alphavantage", run: s.liveDailyPrices},
		{name: "mock", run: s.mockBars},
	}
	result, err := s.fetch("prices:"+ticker, func() (fetched, error) {
		return s.runChain(ctx, ticker, chain, []models.PriceBar(nil))
	})
	if err != nil {
		return nil, "", err
	}
	bars, _ := result.value.([]models.PriceBar)
	return bars, result.provenance, nil
}

// CompanyOverview returns fundamentals for a ticker.
func (s *Service) CompanyOverview(ctx context.Context, ticker string) (*models.Overview, models.Provenance, error) {
	ticker = strings.ToUpper(ticker)
	chain := []provider{
		{name: "alphavantage", run: s.liveOverview},
		{name: "mock", run: s.mockOverview},
	}
	result, err := s.fetch("overview:"+ticker, func() (fetched, error) {
		return s.runChain(ctx, ticker, chain, (*models.Overview)(nil))
	})
	if err != nil {
		return nil, "", err
	}
	overview, _ := result.value.(*models.Overview)
	return overview, result.provenance, nil
}

// AnalystData returns the analyst/ratings snapshot. There is no live source
// for this category, so the chain is mock-only.
func (s *Service) AnalystData(ctx context.Context, ticker string) (*models.AnalystSnapshot, models.Provenance, error) {
	ticker = strings.ToUpper(ticker)
	chain := []provider{
		{name: "mock", run: s.mockAnalyst},
	}
	result, err := s.fetch("analyst:"+ticker, func() (fetched, error) {
		return s.runChain(ctx, ticker, chain, (*models.AnalystSnapshot)(nil))
	})
	if err != nil {
		return nil, "", err
	}
	snapshot, _ := result.value.(*models.AnalystSnapshot)
	return snapshot, result.provenance, nil
}

// OwnershipData returns insider/flow activity. Stocks are fetched live from
// Finnhub when a key is present.
func (s *Service) OwnershipData(ctx context.Context, ticker string) (*models.OwnershipActivity, models.Provenance, error) {
	ticker = strings.ToUpper(ticker)
	chain := []provider{
		{name: "finnhub", run: s.liveInsiders},
		{name: "mock", run: s.mockOwnership},
	}
	result, err := s.fetch("ownership:"+ticker, func() (fetched, error) {
		return s.runChain(ctx, ticker, chain, (*models.OwnershipActivity)(nil))
	})
	if err != nil {
		return nil, "", err
	}
	activity, _ := result.value.(*models.OwnershipActivity)
	return activity, result.provenance, nil
}

// RiskData returns the risk profile. Mock-only; there is no live source.
func (s *Service) RiskData(ctx context.Context, ticker string) (*models.RiskProfile, models.Provenance, error) {
	ticker = strings.ToUpper(ticker)
	chain := []provider{
		{name: "mock", run: s.mockRisk},
	}
	result, err := s.fetch("risk:"+ticker, func() (fetched, error) {
		return s.runChain(ctx, ticker, chain, (*models.RiskProfile)(nil))
	})
	if err != nil {
		return nil, "", err
	}
	profile, _ := result.value.(*models.RiskProfile)
	return profile, result.provenance, nil
}

// mockFor resolves the mock dataset chain: detailed stock, detailed fund,
// then the generic fund for thesis-universe tickers without one.
func (s *Service) mockFor(ticker string) (*MockAsset, bool) {
	if asset, ok := s.mocks.Stock(ticker); ok {
		return asset, true
	}
	if asset, ok := s.mocks.Fund(ticker); ok {
		return asset, true
	}
	if s.extraFunds[strings.ToUpper(ticker)] {
		return s.mocks.GenericFund(ticker), true
	}
	return nil, false
}
