package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/common"
	"github.com/ternarybob/conflux/internal/handlers"
	"github.com/ternarybob/conflux/internal/history"
	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/marketdata"
	"github.com/ternarybob/conflux/internal/services/analysis"
	"github.com/ternarybob/conflux/internal/services/scheduler"
	"github.com/ternarybob/conflux/internal/storage"
	"github.com/ternarybob/conflux/internal/thesis"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Domain services
	MarketData       *marketdata.Service
	ThesisService    *thesis.Service
	HistoryStore     *history.Store
	AnalysisService  *analysis.Service
	SchedulerService *scheduler.Service

	// HTTP handlers
	AnalyzeHandler   *handlers.AnalyzeHandler
	ThesisHandler    *handlers.ThesisHandler
	SettingsHandler  *handlers.SettingsHandler
	WatchlistHandler *handlers.WatchlistHandler
	StatusHandler    *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Scheduler.Enabled {
		if err := app.SchedulerService.Start(cfg.Scheduler.Schedule); err != nil {
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	logger.Info().
		Bool("mock_data", app.MarketData.UsingMockData()).
		Bool("scheduler", cfg.Scheduler.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger) and seeds defaults
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}
	a.StorageManager = storageManager

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	// Seed default KV values without clobbering user edits
	ctx := context.Background()
	kv := storageManager.KeyValueStorage()
	for _, def := range common.GetDefaultKVValues() {
		_, err := kv.Get(ctx, def.Key)
		if errors.Is(err, interfaces.ErrKeyNotFound) {
			if err := kv.Set(ctx, def.Key, def.Value, def.Description); err != nil {
				a.Logger.Warn().Err(err).Str("key", def.Key).Msg("Failed to seed default value")
			}
		}
	}

	return nil
}

// initServices wires the domain services
func (a *App) initServices() error {
	ctx := context.Background()
	kv := a.StorageManager.KeyValueStorage()

	thesisService, err := thesis.NewService(a.Config.Thesis.File, a.Logger)
	if err != nil {
		return err
	}
	a.ThesisService = thesisService

	// Provider keys resolve env first, then KV store, then config file
	avKey := common.ResolveAPIKey(ctx, kv, "alpha_vantage_key", a.Config.MarketData.AlphaVantageKey)
	fhKey := common.ResolveAPIKey(ctx, kv, "finnhub_key", a.Config.MarketData.FinnhubKey)

	// One cache for provider responses and history timelines, so cache-clear
	// and key updates invalidate both
	cache := marketdata.NewCache(a.Config.MarketData.ParsedCacheTTL())

	a.MarketData = marketdata.NewService(
		marketdata.NewAlphaVantageClient(avKey, marketdata.WithLogger(a.Logger)),
		marketdata.NewFinnhubClient(fhKey, marketdata.WithFinnhubLogger(a.Logger)),
		cache,
		marketdata.NewAdmissionController(a.Config.MarketData.MinuteLimit, a.Config.MarketData.DayLimit),
		thesisService.Tickers(), // the thesis universe is all funds
		a.Logger,
	)

	a.HistoryStore = history.NewStore(a.Config.History.Dir, a.Logger)

	a.AnalysisService = analysis.NewService(a.MarketData, thesisService, a.HistoryStore, a.MarketData, cache, a.Logger)

	a.SchedulerService = scheduler.NewService(
		a.AnalysisService,
		a.StorageManager.SnapshotStorage(),
		kv,
		a.Logger,
	)

	return nil
}

// initHandlers wires the HTTP handlers
func (a *App) initHandlers() {
	kv := a.StorageManager.KeyValueStorage()

	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.AnalysisService, a.Logger)
	a.ThesisHandler = handlers.NewThesisHandler(a.ThesisService, a.Logger)
	a.SettingsHandler = handlers.NewSettingsHandler(kv, a.MarketData, a.Logger)
	a.WatchlistHandler = handlers.NewWatchlistHandler(kv, a.StorageManager.SnapshotStorage(), a.SchedulerService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.MarketData, a.Logger)
}

// Close shuts down background services and the storage layer
func (a *App) Close() error {
	a.SchedulerService.Stop()

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage manager")
			return err
		}
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
