package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/marketdata"
	"github.com/ternarybob/conflux/internal/services/analysis"
)

// AnalyzeHandler serves the analysis and history endpoints
type AnalyzeHandler struct {
	analysis *analysis.Service
	logger   arbor.ILogger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisService *analysis.Service, logger arbor.ILogger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysis: analysisService,
		logger:   logger,
	}
}

// AnalyzeTickerHandler handles GET /api/analyze/{ticker} - runs the full
// signal pipeline for one ticker
func (h *AnalyzeHandler) AnalyzeTickerHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := pathParam(r, "/api/analyze/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Missing ticker parameter")
		return
	}

	result, err := h.analysis.Analyze(r.Context(), ticker)
	if err != nil {
		h.writeAnalysisError(w, ticker, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// HistoryHandler handles GET /api/history/{ticker} - returns the reconciled
// score timeline
func (h *AnalyzeHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := pathParam(r, "/api/history/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Missing ticker parameter")
		return
	}

	entries, err := h.analysis.History(r.Context(), ticker)
	if err != nil {
		h.writeAnalysisError(w, ticker, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":  ticker,
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *AnalyzeHandler) writeAnalysisError(w http.ResponseWriter, ticker string, err error) {
	var rateLimitErr *marketdata.RateLimitError
	switch {
	case errors.Is(err, analysis.ErrInvalidTicker):
		WriteError(w, http.StatusBadRequest, "Invalid ticker symbol")
	case errors.Is(err, analysis.ErrUnknownTicker):
		WriteError(w, http.StatusNotFound, "No data available for ticker "+ticker)
	case errors.As(err, &rateLimitErr):
		WriteError(w, http.StatusTooManyRequests, "Provider rate limit reached - try again later")
	default:
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, "Analysis failed")
	}
}
