package analysis

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/ternarybob/conflux/internal/common"
	"github.com/ternarybob/conflux/internal/convergence"
	"github.com/ternarybob/conflux/internal/history"
	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/marketdata"
	"github.com/ternarybob/conflux/internal/models"
	"github.com/ternarybob/conflux/internal/overlap"
	"github.com/ternarybob/conflux/internal/signals"
)

// ErrUnknownTicker is returned when no data source can identify the ticker
var ErrUnknownTicker = errors.New("unknown ticker")

// ErrInvalidTicker is returned for input that cannot be a ticker symbol
var ErrInvalidTicker = errors.New("invalid ticker")

// priceHistoryWindow is how many recent bars the analysis response carries
const priceHistoryWindow = 90

// Service orchestrates one full analysis pass: acquisition fan-out, signal
// evaluation, convergence, overlap, and the daily history log.
type Service struct {
	marketData interfaces.MarketDataService
	thesis     interfaces.ThesisService
	store      interfaces.HistoryStore
	backfiller *history.Backfiller
	evaluator  *signals.Evaluator
	aggregator *convergence.Aggregator
	overlap    *overlap.Analyzer
	cache      *marketdata.Cache
	logger     arbor.ILogger
}

// NewService creates the analysis service. The cache is the acquisition
// layer's cache: sharing it means cache-clear operations and key updates
// also drop cached history timelines.
func NewService(marketData interfaces.MarketDataService, thesis interfaces.ThesisService,
	store interfaces.HistoryStore, holdings overlap.HoldingsSource, cache *marketdata.Cache,
	logger arbor.ILogger) *Service {
	return &Service{
		marketData: marketData,
		thesis:     thesis,
		store:      store,
		backfiller: history.NewBackfiller(),
		evaluator:  signals.NewEvaluator(),
		aggregator: convergence.NewAggregator(),
		overlap:    overlap.NewAnalyzer(holdings),
		cache:      cache,
		logger:     logger,
	}
}

// acquired holds the fan-out results for one ticker
type acquired struct {
	bars       []models.PriceBar
	overview   *models.Overview
	analyst    *models.AnalystSnapshot
	ownership  *models.OwnershipActivity
	risk       *models.RiskProfile
	provenance map[string]models.Provenance
}

// acquire fetches all five data categories concurrently
func (s *Service) acquire(ctx context.Context, ticker string) (*acquired, error) {
	data := &acquired{provenance: make(map[string]models.Provenance, 5)}
	prov := make([]models.Provenance, 5)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.bars, prov[0], err = s.marketData.DailyPrices(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		data.overview, prov[1], err = s.marketData.CompanyOverview(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		data.analyst, prov[2], err = s.marketData.AnalystData(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		data.ownership, prov[3], err = s.marketData.OwnershipData(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		data.risk, prov[4], err = s.marketData.RiskData(gctx, ticker)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, category := range []string{"prices", "overview", "analyst", "ownership", "risk"} {
		data.provenance[category] = prov[i]
	}
	return data, nil
}

// Analyze runs the full scoring pipeline for one ticker.
func (s *Service) Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
	ticker = common.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	data, err := s.acquire(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(data.bars) == 0 && data.overview == nil {
		return nil, ErrUnknownTicker
	}

	kind := s.marketData.AssetKind(ticker)
	membership := s.thesis.Membership(ticker)

	// Risk data may be missing for live-only tickers; derive volatility and
	// drawdown from the price series instead of skipping the whole signal.
	risk := data.risk
	if risk == nil {
		risk = signals.ProfileFromBars(data.bars)
	}

	sigs := s.evaluator.Evaluate(signals.Input{
		Ticker:    ticker,
		Kind:      kind,
		Bars:      data.bars,
		Overview:  data.overview,
		Analyst:   data.analyst,
		Ownership: data.ownership,
		Risk:      risk,
		Thesis:    membership,
	})
	result := s.aggregator.Aggregate(sigs)

	var overlapRecords []models.OverlapRecord
	if kind == models.AssetKindFund {
		overlapRecords = s.overlap.Compute(ticker, nil)
	}

	s.logToday(ticker, sigs, result)

	analysis := &models.AnalysisResult{
		ID:            common.NewAnalysisID(),
		Ticker:        ticker,
		AssetType:     kind,
		CurrentPrice:  currentPrice(data.bars),
		PriceHistory:  recentBars(data.bars, priceHistoryWindow),
		Signals:       sigs,
		Convergence:   result,
		Overlap:       overlapRecords,
		Thesis:        membership,
		Provenance:    data.provenance,
		UsingMockData: s.marketData.UsingMockData(),
		AnalyzedAt:    time.Now(),
	}
	if data.overview != nil {
		analysis.Name = data.overview.Name
		analysis.Sector = data.overview.Sector
	}

	s.logger.Info().
		Str("ticker", ticker).
		Float64("composite", result.CompositeScore).
		Str("label", result.Label).
		Msg("Analysis complete")

	return analysis, nil
}

// logToday appends today's scores to the history log. Failures are logged
// and swallowed; a broken history file must not fail the analysis.
func (s *Service) logToday(ticker string, sigs []models.Signal, result models.ConvergenceResult) {
	scores := make(map[string]float64, len(sigs))
	for _, sig := range sigs {
		scores[sig.ID] = sig.Score
	}
	label := result.Label

	entry := models.HistoryEntry{
		Date:        time.Now().Format("2006-01-02"),
		Scores:      scores,
		Composite:   result.CompositeScore,
		Label:       &label,
		SignalCount: len(sigs),
		Source:      models.HistorySourceLive,
	}
	if err := s.store.Append(ticker, entry); err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to log history entry")
	}
	// Drop only this ticker's cached timeline; provider responses stay warm
	s.cache.Delete("history:" + ticker)
}

// History returns the reconciled score timeline for a ticker: backfilled
// entries from price history overlaid with logged full-analysis entries.
func (s *Service) History(ctx context.Context, ticker string) ([]models.HistoryEntry, error) {
	ticker = common.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	cacheKey := "history:" + ticker
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.HistoryEntry), nil
	}

	bars, _, err := s.marketData.DailyPrices(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrUnknownTicker
	}

	backfilled := s.backfiller.Compute(bars)
	logged, err := s.store.Load(ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to load history log - using backfill only")
		logged = nil
	}

	merged := history.Merge(backfilled, logged)
	s.cache.Set(cacheKey, merged)
	return merged, nil
}

func currentPrice(bars []models.PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	return math.Round(bars[len(bars)-1].Close*100) / 100
}

func recentBars(bars []models.PriceBar, n int) []models.PriceBar {
	if len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}
