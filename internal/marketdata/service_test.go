package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/models"
)

func testService(t *testing.T, avKey, fhKey string, avOpts []AlphaVantageOption, fhOpts []FinnhubOption) *Service {
	t.Helper()
	return NewService(
		NewAlphaVantageClient(avKey, avOpts...),
		NewFinnhubClient(fhKey, fhOpts...),
		NewCache(time.Minute),
		NewAdmissionController(100, 100),
		[]string{"CHPX", "IPWR"},
		arbor.NewLogger(),
	)
}

func TestService_MockFallbackWithoutKeys(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	bars, provenance, err := svc.DailyPrices(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceMock, provenance)
	assert.NotEmpty(t, bars)

	overview, provenance, err := svc.CompanyOverview(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceMock, provenance)
	require.NotNil(t, overview)
	assert.Equal(t, "AAPL", overview.Ticker)

	assert.True(t, svc.UsingMockData())
}

func TestService_UnknownTickerNilData(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	bars, _, err := svc.DailyPrices(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Empty(t, bars)

	overview, _, err := svc.CompanyOverview(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, overview)
}

func TestService_GenericFundForThesisUniverse(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	// CHPX has no detailed mock but is in the configured fund universe
	overview, provenance, err := svc.CompanyOverview(context.Background(), "CHPX")
	require.NoError(t, err)
	require.NotNil(t, overview)
	assert.Equal(t, models.AssetKindFund, overview.Kind)
	assert.Equal(t, models.ProvenanceMock, provenance)
	assert.Equal(t, models.AssetKindFund, svc.AssetKind("chpx"))
}

func TestService_AssetKindClassification(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	assert.Equal(t, models.AssetKindStock, svc.AssetKind("AAPL"))
	assert.Equal(t, models.AssetKindFund, svc.AssetKind("SMH"))
	assert.Equal(t, models.AssetKindFund, svc.AssetKind("IPWR"))
	assert.Equal(t, models.AssetKindStock, svc.AssetKind("ZZZZ"))
}

func TestService_LivePricesCachedWithProvenance(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		payload := map[string]interface{}{
			"Time Series (Daily)": map[string]interface{}{
				"2026-08-27": map[string]string{
					"1. open": "100.0", "2. high": "102.0", "3. low": "99.0",
					"4. close": "101.0", "5. volume": "5000000",
				},
				"2026-08-28": map[string]string{
					"1. open": "101.0", "2. high": "104.0", "3. low": "100.5",
					"4. close": "103.5", "5. volume": "6000000",
				},
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	svc := testService(t, "test-key", "", []AlphaVantageOption{WithBaseURL(server.URL)}, nil)

	bars, provenance, err := svc.DailyPrices(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceLive, provenance)
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Date.Before(bars[1].Date), "bars should be sorted ascending")
	assert.Equal(t, 103.5, bars[1].Close)

	// Second read must come from cache
	_, provenance, err = svc.DailyPrices(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceLive, provenance)
	assert.Equal(t, 1, calls, "second read should not hit the provider")
}

func TestService_LiveFailureFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"Error Message": "Invalid API call",
		})
	}))
	defer server.Close()

	svc := testService(t, "test-key", "", []AlphaVantageOption{WithBaseURL(server.URL)}, nil)

	bars, provenance, err := svc.DailyPrices(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceMock, provenance)
	assert.NotEmpty(t, bars)
}

func TestService_FinnhubOwnershipPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"transactionCode": "P", "change": 1000, "transactionPrice": 50.0, "transactionDate": "2026-08-01"},
				{"transactionCode": "S", "change": -200, "transactionPrice": 55.0, "transactionDate": "2026-08-05"},
				{"transactionCode": "M", "change": 5000, "transactionPrice": 10.0, "transactionDate": "2026-08-10"},
			},
		})
	}))
	defer server.Close()

	svc := testService(t, "", "fh-key", nil, []FinnhubOption{WithFinnhubBaseURL(server.URL)})

	activity, provenance, err := svc.OwnershipData(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenancePartial, provenance)
	require.NotNil(t, activity)
	require.Len(t, activity.InsiderTransactions, 2, "option exercises should be filtered out")
	assert.Equal(t, "buy", activity.InsiderTransactions[0].Type)
	assert.Equal(t, 50000.0, activity.InsiderTransactions[0].Value)
	assert.Equal(t, "sell", activity.InsiderTransactions[1].Type)
	assert.Equal(t, 11000.0, activity.InsiderTransactions[1].Value)
	assert.Nil(t, activity.InstitutionalOwnership)
}

func TestService_OwnershipRespectsDailyBudget(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]interface{}{}})
	}))
	defer server.Close()

	// Spend the entire daily budget before the ownership fetch.
	admission := NewAdmissionController(5, 1)
	ok, err := admission.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	svc := NewService(
		NewAlphaVantageClient(""),
		NewFinnhubClient("fh-key", WithFinnhubBaseURL(server.URL)),
		NewCache(time.Minute),
		admission,
		nil,
		arbor.NewLogger(),
	)

	activity, provenance, err := svc.OwnershipData(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceMock, provenance, "exhausted budget must fall back to mock")
	assert.Equal(t, 0, calls, "Finnhub must not be called past the daily budget")
	require.NotNil(t, activity)
}

func TestService_OwnershipFetchCountsAgainstBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"transactionCode": "P", "change": 100, "transactionPrice": 10.0, "transactionDate": "2026-08-01"},
			},
		})
	}))
	defer server.Close()

	svc := testService(t, "", "fh-key", nil, []FinnhubOption{WithFinnhubBaseURL(server.URL)})

	_, _, err := svc.OwnershipData(context.Background(), "AAPL")
	require.NoError(t, err)

	status := svc.RateLimitStatus()
	assert.Equal(t, 1, status.CallsLastDay, "the insider fetch must claim an admission slot")
}

func TestService_ClearCacheForcesRefetch(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	_, _, err := svc.DailyPrices(context.Background(), "AAPL")
	require.NoError(t, err)

	svc.ClearCache()

	bars, _, err := svc.DailyPrices(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.NotEmpty(t, bars)
}

func TestService_HoldingsSource(t *testing.T) {
	svc := testService(t, "", "", nil, nil)

	tickers := svc.FundTickers()
	assert.Contains(t, tickers, "SMH")
	assert.Contains(t, tickers, "QQQ")

	holdings, ok := svc.TopHoldings("SMH")
	require.True(t, ok)
	assert.Equal(t, "SMH", holdings.Ticker)
	assert.NotEmpty(t, holdings.Holdings)

	_, ok = svc.TopHoldings("ZZZZ")
	assert.False(t, ok)
}
