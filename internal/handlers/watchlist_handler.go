package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/common"
	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/services/scheduler"
)

// WatchlistHandler manages the snapshot watchlist and its stored results
type WatchlistHandler struct {
	kv        interfaces.KeyValueStorage
	snapshots interfaces.SnapshotStorage
	scheduler *scheduler.Service
	logger    arbor.ILogger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(kv interfaces.KeyValueStorage, snapshots interfaces.SnapshotStorage,
	schedulerService *scheduler.Service, logger arbor.ILogger) *WatchlistHandler {
	return &WatchlistHandler{
		kv:        kv,
		snapshots: snapshots,
		scheduler: schedulerService,
		logger:    logger,
	}
}

// GetWatchlistHandler handles GET /api/watchlist - returns the ticker list
// with each ticker's latest snapshot when one exists
func (h *WatchlistHandler) GetWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	tickers := h.scheduler.Watchlist(r.Context())
	entries := make([]map[string]interface{}, 0, len(tickers))
	for _, ticker := range tickers {
		entry := map[string]interface{}{"ticker": ticker}
		if latest, err := h.snapshots.LatestSnapshot(r.Context(), ticker); err == nil {
			entry["latest"] = latest
		}
		entries = append(entries, entry)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tickers": entries,
		"count":   len(entries),
	})
}

// UpdateWatchlistHandler handles PUT /api/watchlist - replaces the ticker list
func (h *WatchlistHandler) UpdateWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "PUT") {
		return
	}

	var req struct {
		Tickers []string `json:"tickers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	normalized := common.NormalizeTickers(req.Tickers)
	if len(normalized) == 0 && len(req.Tickers) > 0 {
		WriteError(w, http.StatusBadRequest, "No valid tickers in request")
		return
	}

	value := strings.Join(normalized, ",")
	if err := h.kv.Set(r.Context(), "watchlist", value, "Comma-separated tickers for the daily snapshot job"); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store watchlist")
		WriteError(w, http.StatusInternalServerError, "Failed to store watchlist")
		return
	}

	h.logger.Info().Int("count", len(normalized)).Msg("Watchlist updated")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"tickers": normalized,
	})
}

// RunSnapshotHandler handles POST /api/watchlist/run - triggers a snapshot
// pass in the background
func (h *WatchlistHandler) RunSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	// Detach from the request context so the pass survives the response
	common.SafeGo(h.logger, "manualSnapshot", func() {
		h.scheduler.RunSnapshot(context.Background())
	})

	WriteJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"message": "Snapshot pass started",
	})
}

// SnapshotsHandler handles GET /api/watchlist/snapshots/{ticker} - returns
// stored snapshots for one ticker, newest first
func (h *WatchlistHandler) SnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := common.NormalizeTicker(pathParam(r, "/api/watchlist/snapshots/"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Missing or invalid ticker parameter")
		return
	}

	snapshots, err := h.snapshots.ListSnapshots(r.Context(), ticker, 90)
	if err != nil {
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to list snapshots")
		WriteError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":    ticker,
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}
