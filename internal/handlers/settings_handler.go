package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/interfaces"
)

// SettingsHandler manages provider API keys stored in the KV store
type SettingsHandler struct {
	kv         interfaces.KeyValueStorage
	marketData interfaces.MarketDataService
	logger     arbor.ILogger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(kv interfaces.KeyValueStorage, marketData interfaces.MarketDataService,
	logger arbor.ILogger) *SettingsHandler {
	return &SettingsHandler{
		kv:         kv,
		marketData: marketData,
		logger:     logger,
	}
}

// GetKeysHandler handles GET /api/settings/keys - returns masked provider keys
func (h *SettingsHandler) GetKeysHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	response := map[string]interface{}{
		"using_mock_data": h.marketData.UsingMockData(),
	}
	for _, name := range []string{"alpha_vantage_key", "finnhub_key"} {
		value, err := h.kv.Get(r.Context(), name)
		if err != nil {
			if !errors.Is(err, interfaces.ErrKeyNotFound) {
				h.logger.Error().Err(err).Str("key", name).Msg("Failed to read provider key")
				WriteError(w, http.StatusInternalServerError, "Failed to read provider keys")
				return
			}
			value = ""
		}
		if value != "" {
			response[name] = maskValue(value)
		} else {
			response[name] = ""
		}
	}

	WriteJSON(w, http.StatusOK, response)
}

// UpdateKeysHandler handles PUT/POST /api/settings/keys - stores provider
// keys and swaps the live clients
func (h *SettingsHandler) UpdateKeysHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		AlphaVantageKey string `json:"alpha_vantage_key"`
		FinnhubKey      string `json:"finnhub_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.kv.Set(r.Context(), "alpha_vantage_key", req.AlphaVantageKey, "Alpha Vantage API key"); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store Alpha Vantage key")
		WriteError(w, http.StatusInternalServerError, "Failed to store provider keys")
		return
	}
	if err := h.kv.Set(r.Context(), "finnhub_key", req.FinnhubKey, "Finnhub API key"); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store Finnhub key")
		WriteError(w, http.StatusInternalServerError, "Failed to store provider keys")
		return
	}

	// Swap the live clients; this also drops all cached responses
	h.marketData.UpdateKeys(req.AlphaVantageKey, req.FinnhubKey)

	h.logger.Info().Msg("Provider keys updated")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "success",
		"message":         "Provider keys updated",
		"using_mock_data": h.marketData.UsingMockData(),
	})
}
