package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/interfaces"
)

// ThesisHandler serves the investment thesis reference data
type ThesisHandler struct {
	thesis interfaces.ThesisService
	logger arbor.ILogger
}

// NewThesisHandler creates a new thesis handler
func NewThesisHandler(thesisService interfaces.ThesisService, logger arbor.ILogger) *ThesisHandler {
	return &ThesisHandler{
		thesis: thesisService,
		logger: logger,
	}
}

// GetThesisHandler handles GET /api/thesis - returns the full tier structure
func (h *ThesisHandler) GetThesisHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": h.thesis.Summary(),
		"tiers":   h.thesis.Tiers(),
	})
}
