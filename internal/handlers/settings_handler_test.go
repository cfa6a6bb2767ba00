package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/models"
)

// memKV is an in-memory KeyValueStorage for handler tests
type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return value, nil
}

func (m *memKV) GetPair(ctx context.Context, key string) (*interfaces.KeyValuePair, error) {
	value, err := m.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &interfaces.KeyValuePair{Key: key, Value: value}, nil
}

func (m *memKV) Set(ctx context.Context, key, value, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memKV) Upsert(ctx context.Context, key, value, description string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.values[key]
	m.values[key] = value
	return !existed, nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memKV) List(ctx context.Context) ([]interfaces.KeyValuePair, error) {
	return nil, nil
}

func (m *memKV) GetAll(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// stubMarketData records key updates and otherwise does nothing
type stubMarketData struct {
	avKey, fhKey string
	cacheCleared bool
}

func (s *stubMarketData) DailyPrices(ctx context.Context, ticker string) ([]models.PriceBar, models.Provenance, error) {
	return nil, models.ProvenanceMock, nil
}

func (s *stubMarketData) CompanyOverview(ctx context.Context, ticker string) (*models.Overview, models.Provenance, error) {
	return nil, models.ProvenanceMock, nil
}

func (s *stubMarketData) AnalystData(ctx context.Context, ticker string) (*models.AnalystSnapshot, models.Provenance, error) {
	return nil, models.ProvenanceMock, nil
}

func (s *stubMarketData) OwnershipData(ctx context.Context, ticker string) (*models.OwnershipActivity, models.Provenance, error) {
	return nil, models.ProvenanceMock, nil
}

func (s *stubMarketData) RiskData(ctx context.Context, ticker string) (*models.RiskProfile, models.Provenance, error) {
	return nil, models.ProvenanceMock, nil
}

func (s *stubMarketData) AssetKind(ticker string) models.AssetKind { return models.AssetKindStock }
func (s *stubMarketData) UsingMockData() bool                      { return s.avKey == "" }
func (s *stubMarketData) RateLimitStatus() models.RateLimitStatus  { return models.RateLimitStatus{} }
func (s *stubMarketData) ClearCache()                              { s.cacheCleared = true }

func (s *stubMarketData) UpdateKeys(alphaVantageKey, finnhubKey string) {
	s.avKey = alphaVantageKey
	s.fhKey = finnhubKey
}

func (s *stubMarketData) FundTickers() []string { return nil }

func (s *stubMarketData) TopHoldings(ticker string) (*models.FundHoldings, bool) {
	return nil, false
}

func TestUpdateKeysHandlerAcceptsPutAndPost(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodPost} {
		kv := newMemKV()
		market := &stubMarketData{}
		handler := NewSettingsHandler(kv, market, arbor.NewLogger())

		body := strings.NewReader(`{"alpha_vantage_key":"av-test-key-1234","finnhub_key":"fh-test-key-5678"}`)
		req := httptest.NewRequest(method, "/api/settings/keys", body)
		rec := httptest.NewRecorder()

		handler.UpdateKeysHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "method %s should be accepted", method)
		assert.Equal(t, "av-test-key-1234", market.avKey)
		assert.Equal(t, "fh-test-key-5678", market.fhKey)

		stored, err := kv.Get(context.Background(), "alpha_vantage_key")
		require.NoError(t, err)
		assert.Equal(t, "av-test-key-1234", stored)
	}
}

func TestUpdateKeysHandlerRejectsGet(t *testing.T) {
	handler := NewSettingsHandler(newMemKV(), &stubMarketData{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/settings/keys", nil)
	rec := httptest.NewRecorder()

	handler.UpdateKeysHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetKeysHandlerMasksValues(t *testing.T) {
	kv := newMemKV()
	require.NoError(t, kv.Set(context.Background(), "alpha_vantage_key", "av-test-key-1234", ""))
	handler := NewSettingsHandler(kv, &stubMarketData{avKey: "av-test-key-1234"}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/settings/keys", nil)
	rec := httptest.NewRecorder()

	handler.GetKeysHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "av-t...1234", resp["alpha_vantage_key"])
	assert.Equal(t, "", resp["finnhub_key"])
	assert.Equal(t, false, resp["using_mock_data"])
}
