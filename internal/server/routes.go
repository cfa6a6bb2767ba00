package server

import (
	"net/http"

	"github.com/ternarybob/conflux/internal/handlers"
)

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "Not found")
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Analysis
	mux.HandleFunc("/api/analyze/", s.app.AnalyzeHandler.AnalyzeTickerHandler) // GET /{ticker}
	mux.HandleFunc("/api/history/", s.app.AnalyzeHandler.HistoryHandler)       // GET /{ticker}

	// API routes - Thesis reference data
	mux.HandleFunc("/api/thesis", s.app.ThesisHandler.GetThesisHandler)

	// API routes - Settings (provider keys)
	mux.HandleFunc("/api/settings/keys", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"GET":  s.app.SettingsHandler.GetKeysHandler,
			"PUT":  s.app.SettingsHandler.UpdateKeysHandler,
			"POST": s.app.SettingsHandler.UpdateKeysHandler,
		})
	})

	// API routes - Watchlist and snapshots
	mux.HandleFunc("/api/watchlist", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"GET": s.app.WatchlistHandler.GetWatchlistHandler,
			"PUT": s.app.WatchlistHandler.UpdateWatchlistHandler,
		})
	})
	mux.HandleFunc("/api/watchlist/run", s.app.WatchlistHandler.RunSnapshotHandler)     // POST
	mux.HandleFunc("/api/watchlist/snapshots/", s.app.WatchlistHandler.SnapshotsHandler) // GET /{ticker}

	// API routes - Operations
	mux.HandleFunc("/api/ratelimit", s.app.StatusHandler.RateLimitHandler)
	mux.HandleFunc("/api/cache/clear", s.app.StatusHandler.ClearCacheHandler)

	// API routes - System
	mux.HandleFunc("/health", s.app.StatusHandler.HealthHandler)
	mux.HandleFunc("/version", s.app.StatusHandler.VersionHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", notFoundHandler)

	return mux
}
