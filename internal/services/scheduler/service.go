package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/common"
	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/models"
)

// snapshotTimeout bounds one full watchlist pass. Live acquisition can block
// on the minute window, so this is generous.
const snapshotTimeout = 10 * time.Minute

// Analyzer is the slice of the analysis service the scheduler needs
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error)
}

// Service runs the daily watchlist snapshot job: analyze each watchlist
// ticker and persist the convergence verdict for later comparison.
type Service struct {
	analyzer  Analyzer
	snapshots interfaces.SnapshotStorage
	kv        interfaces.KeyValueStorage
	cron      *cron.Cron
	logger    arbor.ILogger
	mu        sync.Mutex
	running   bool
}

// NewService creates a new scheduler service
func NewService(analyzer Analyzer, snapshots interfaces.SnapshotStorage,
	kv interfaces.KeyValueStorage, logger arbor.ILogger) *Service {
	return &Service{
		analyzer:  analyzer,
		snapshots: snapshots,
		kv:        kv,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger,
	}
}

// Start begins the scheduler with the given cron expression
func (s *Service) Start(schedule string) error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if err := common.ValidateSchedule(schedule); err != nil {
		return err
	}

	_, err := s.cron.AddFunc(schedule, func() {
		common.SafeGo(s.logger, "watchlistSnapshot", func() {
			s.RunSnapshot(context.Background())
		})
	})
	if err != nil {
		return fmt.Errorf("failed to add snapshot job: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info().Str("schedule", schedule).Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running snapshot pass to finish
func (s *Service) Stop() {
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info().Msg("Scheduler stopped")
}

// Watchlist reads the snapshot ticker list from KV storage
func (s *Service) Watchlist(ctx context.Context) []string {
	value, err := s.kv.Get(ctx, "watchlist")
	if err != nil {
		if err != interfaces.ErrKeyNotFound {
			s.logger.Warn().Err(err).Msg("Failed to read watchlist")
		}
		return nil
	}
	return common.NormalizeTickers(strings.Split(value, ","))
}

// RunSnapshot analyzes every watchlist ticker and persists one snapshot per
// ticker. Only one pass runs at a time; a second call while one is in flight
// returns immediately.
func (s *Service) RunSnapshot(parent context.Context) {
	if !s.mu.TryLock() {
		s.logger.Warn().Msg("Snapshot pass already running - skipping")
		return
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, snapshotTimeout)
	defer cancel()

	tickers := s.Watchlist(ctx)
	if len(tickers) == 0 {
		s.logger.Info().Msg("Watchlist empty - nothing to snapshot")
		return
	}

	date := time.Now().Format("2006-01-02")
	saved := 0
	for _, ticker := range tickers {
		result, err := s.analyzer.Analyze(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Snapshot analysis failed")
			continue
		}

		snapshot := &models.Snapshot{
			Ticker:      ticker,
			Date:        date,
			Composite:   result.Convergence.CompositeScore,
			Label:       result.Convergence.Label,
			Confidence:  result.Convergence.Confidence,
			SignalCount: result.Convergence.SignalCount,
			CreatedAt:   time.Now(),
		}
		if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to save snapshot")
			continue
		}
		saved++
	}

	s.logger.Info().
		Int("tickers", len(tickers)).
		Int("saved", saved).
		Msg("Watchlist snapshot pass complete")
}
