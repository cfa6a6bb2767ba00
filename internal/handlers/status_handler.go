package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/common"
	"github.com/ternarybob/conflux/internal/interfaces"
)

// StatusHandler serves operational endpoints: health, version, rate limit
// budget, and cache control.
type StatusHandler struct {
	marketData interfaces.MarketDataService
	logger     arbor.ILogger
	startedAt  time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(marketData interfaces.MarketDataService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		marketData: marketData,
		logger:     logger,
		startedAt:  time.Now(),
	}
}

// HealthHandler handles GET /health
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"uptime":          time.Since(h.startedAt).Round(time.Second).String(),
		"using_mock_data": h.marketData.UsingMockData(),
	})
}

// VersionHandler handles GET /version
func (h *StatusHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// RateLimitHandler handles GET /api/ratelimit - exposes the provider
// admission budget
func (h *StatusHandler) RateLimitHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.marketData.RateLimitStatus())
}

// ClearCacheHandler handles POST /api/cache/clear - drops all cached
// provider responses
func (h *StatusHandler) ClearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	h.marketData.ClearCache()
	h.logger.Info().Msg("Provider cache cleared")
	WriteSuccess(w, "Cache cleared")
}
