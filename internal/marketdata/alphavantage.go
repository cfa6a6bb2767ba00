package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/conflux/internal/models"
)

const (
	// DefaultAlphaVantageURL is the base URL for the Alpha Vantage API.
	DefaultAlphaVantageURL = "https://www.alphavantage.co/query"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// defaultCourtesyRate caps request bursts client-side before the provider
	// admission budget is even consulted.
	defaultCourtesyRate = 5
)

// APIError represents an error response from a market data provider.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError indicates the provider rejected the call for throttling.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider rate limit exceeded, retry after %v", e.RetryAfter)
}

// AlphaVantageClient is a client for the Alpha Vantage market data API.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// AlphaVantageOption configures the client.
type AlphaVantageOption func(*AlphaVantageClient)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom client-side rate limit.
func WithRateLimit(requestsPerSecond int) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewAlphaVantageClient creates a new Alpha Vantage client.
func NewAlphaVantageClient(apiKey string, opts ...AlphaVantageOption) *AlphaVantageClient {
	c := &AlphaVantageClient{
		baseURL: DefaultAlphaVantageURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultCourtesyRate), defaultCourtesyRate),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasKey reports whether the client was configured with an API key.
func (c *AlphaVantageClient) HasKey() bool {
	return c.apiKey != ""
}

// get performs a GET request and decodes the raw JSON object. Alpha Vantage
// signals errors and throttling inside a 200 body, so both are checked here.
func (c *AlphaVantageClient) get(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	params.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("function", params.Get("function")).
			Str("symbol", params.Get("symbol")).
			Msg("Alpha Vantage API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   params.Get("function"),
		}
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if msg, ok := raw["Error Message"]; ok {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    string(msg),
			Endpoint:   params.Get("function"),
		}
	}
	if _, ok := raw["Note"]; ok {
		return nil, &RateLimitError{RetryAfter: time.Minute}
	}

	return raw, nil
}

type avDailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailyPrices retrieves the daily OHLCV series for a ticker, sorted by date
// ascending.
func (c *AlphaVantageClient) DailyPrices(ctx context.Context, ticker string) ([]models.PriceBar, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", ticker)
	params.Set("outputsize", "compact")

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	series, ok := raw["Time Series (Daily)"]
	if !ok {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "response missing daily time series",
			Endpoint:   "TIME_SERIES_DAILY",
		}
	}

	var byDate map[string]avDailyBar
	if err := json.Unmarshal(series, &byDate); err != nil {
		return nil, fmt.Errorf("failed to decode time series: %w", err)
	}

	bars := make([]models.PriceBar, 0, len(byDate))
	for dateStr, v := range byDate {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   parseFloat(v.Open),
			High:   parseFloat(v.High),
			Low:    parseFloat(v.Low),
			Close:  parseFloat(v.Close),
			Volume: parseFloat(v.Volume),
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return bars, nil
}

type avOverview struct {
	Symbol                     string `json:"Symbol"`
	Name                       string `json:"Name"`
	Sector                     string `json:"Sector"`
	Industry                   string `json:"Industry"`
	MarketCapitalization       string `json:"MarketCapitalization"`
	PERatio                    string `json:"PERatio"`
	PriceToSalesRatioTTM       string `json:"PriceToSalesRatioTTM"`
	PriceToFreeCashFlowsTTM    string `json:"PriceToFreeCashFlowsTTM"`
	DividendYield              string `json:"DividendYield"`
	EPS                        string `json:"EPS"`
	QuarterlyRevenueGrowthYOY  string `json:"QuarterlyRevenueGrowthYOY"`
	QuarterlyEarningsGrowthYOY string `json:"QuarterlyEarningsGrowthYOY"`
}

// CompanyOverview retrieves fundamentals for a ticker. Returns an APIError
// when the provider has no coverage for the symbol.
func (c *AlphaVantageClient) CompanyOverview(ctx context.Context, ticker string) (*models.Overview, error) {
	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", ticker)

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode overview: %w", err)
	}
	var ov avOverview
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to decode overview: %w", err)
	}

	if ov.Symbol == "" {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "no overview data for symbol",
			Endpoint:   "OVERVIEW",
		}
	}

	return &models.Overview{
		Ticker:         ov.Symbol,
		Name:           ov.Name,
		Sector:         ov.Sector,
		Industry:       ov.Industry,
		Kind:           models.AssetKindStock,
		MarketCap:      parseFloat(ov.MarketCapitalization),
		PERatio:        parseFloat(ov.PERatio),
		PSRatio:        parseFloat(ov.PriceToSalesRatioTTM),
		PFCFRatio:      parseFloat(ov.PriceToFreeCashFlowsTTM),
		DividendYield:  parseFloat(ov.DividendYield) * 100,
		EPS:            parseFloat(ov.EPS),
		RevenueGrowth:  parseFloat(ov.QuarterlyRevenueGrowthYOY),
		EarningsGrowth: parseFloat(ov.QuarterlyEarningsGrowthYOY),
	}, nil
}

// parseFloat converts provider string numerics, treating "None" and malformed
// values as zero the way missing fundamentals are scored.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
