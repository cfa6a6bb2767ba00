package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/conflux/internal/models"
)

// DefaultFinnhubURL is the base URL for the Finnhub API.
const DefaultFinnhubURL = "https://finnhub.io/api/v1"

// FinnhubClient fetches insider transaction data from Finnhub.
type FinnhubClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// FinnhubOption configures the client.
type FinnhubOption func(*FinnhubClient)

// WithFinnhubBaseURL sets a custom base URL.
func WithFinnhubBaseURL(baseURL string) FinnhubOption {
	return func(c *FinnhubClient) {
		c.baseURL = baseURL
	}
}

// WithFinnhubHTTPClient sets a custom HTTP client.
func WithFinnhubHTTPClient(httpClient *http.Client) FinnhubOption {
	return func(c *FinnhubClient) {
		c.httpClient = httpClient
	}
}

// WithFinnhubLogger sets a logger.
func WithFinnhubLogger(logger arbor.ILogger) FinnhubOption {
	return func(c *FinnhubClient) {
		c.logger = logger
	}
}

// NewFinnhubClient creates a new Finnhub client.
func NewFinnhubClient(apiKey string, opts ...FinnhubOption) *FinnhubClient {
	c := &FinnhubClient{
		baseURL: DefaultFinnhubURL,
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
func (c *FinnhubClient) HasKey() bool {
	return c.apiKey != ""
}

type finnhubTransaction struct {
	Name             string  `json:"name"`
	Share            float64 `json:"share"`
	Change           float64 `json:"change"`
	TransactionDate  string  `json:"transactionDate"`
	TransactionCode  string  `json:"transactionCode"`
	TransactionPrice float64 `json:"transactionPrice"`
}

type finnhubInsiderResponse struct {
	Data  []finnhubTransaction `json:"data"`
	Error string               `json:"error"`
}

// InsiderTransactions fetches the last six months of insider activity.
// Finnhub's free tier has no institutional ownership figures, so those fields
// stay nil and the ownership evaluator scores on transactions alone.
func (c *FinnhubClient) InsiderTransactions(ctx context.Context, ticker string) (*models.OwnershipActivity, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("symbol", ticker)
	params.Set("from", time.Now().AddDate(0, -6, 0).Format("2006-01-02"))

	reqURL := fmt.Sprintf("%s/stock/insider-transactions?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Msg("Finnhub insider transactions request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAfter: time.Minute}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/stock/insider-transactions",
		}
	}

	var result finnhubInsiderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    result.Error,
			Endpoint:   "/stock/insider-transactions",
		}
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	// Only open-market purchases and sales carry intent; grants and option
	// exercises are compensation noise.
	transactions := make([]models.InsiderTransaction, 0, len(result.Data))
	for _, t := range result.Data {
		if t.TransactionCode != "P" && t.TransactionCode != "S" {
			continue
		}
		value := math.Abs(t.Change * t.TransactionPrice)
		if value <= 0 {
			continue
		}
		txnType := "sell"
		if t.TransactionCode == "P" {
			txnType = "buy"
		}
		transactions = append(transactions, models.InsiderTransaction{
			Type:  txnType,
			Value: value,
			Date:  t.TransactionDate,
		})
	}

	return &models.OwnershipActivity{
		InsiderTransactions: transactions,
	}, nil
}
