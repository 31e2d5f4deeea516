package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsprov "github.com/fintrackhq/fintrack-backend/internal/core/ports/providers"
	"github.com/fintrackhq/fintrack-backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

const providerName = "exchangerate-api"

// Client fetches base-relative rate tables from exchangerate-api.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// apiResponse covers both observed payload revisions: the rates map has been
// seen under "conversion_rates" (v6) and under "rates" (older revisions and
// compatible providers). ratesTable() normalizes the two.
type apiResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	Rates           map[string]float64 `json:"rates"`
	ErrorType       string             `json:"error-type,omitempty"`
}

// ratesTable returns whichever rates field the payload carried, or nil when
// neither is present.
func (r *apiResponse) ratesTable() map[string]float64 {
	if len(r.ConversionRates) > 0 {
		return r.ConversionRates
	}
	if len(r.Rates) > 0 {
		return r.Rates
	}
	return nil
}

// NewClient creates a provider client. The timeout bounds every call so one
// slow provider response cannot stall a refresh batch.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.ExchangeRateAPIKey,
		baseURL: strings.TrimRight(cfg.ExchangeRateAPIURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RateFetchTimeout,
		},
	}
}

// FetchLatest retrieves the full rate table relative to base in one call.
func (c *Client) FetchLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if apiResp.Result != "" && apiResp.Result != "success" {
		return nil, fmt.Errorf("provider returned result=%s error=%s", apiResp.Result, apiResp.ErrorType)
	}

	table := apiResp.ratesTable()
	if table == nil {
		return nil, fmt.Errorf("provider response carried no rates field")
	}

	rates := make(map[string]decimal.Decimal, len(table))
	for code, rate := range table {
		if rate <= 0 {
			continue
		}
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}

	return &domain.RateSnapshot{
		Base:      strings.ToUpper(base),
		Rates:     rates,
		Provider:  providerName,
		FetchedAt: time.Now(),
	}, nil
}

// Name identifies the provider on stored rate rows.
func (c *Client) Name() string {
	return providerName
}

// Ensure Client implements the RateProvider port
var _ portsprov.RateProvider = (*Client)(nil)
