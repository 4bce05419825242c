// Package exchangerateapi implements the outbound rate-provider port against
// the exchangerate-api.com v6 pair endpoint.
package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	portsprov "github.com/devfx/currency_converter_api/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const resultSuccess = "success"

// pairRateResponse maps the subset of the provider's JSON body this client
// needs. Everything else in the (large) response is ignored.
type pairRateResponse struct {
	Result         string          `json:"result"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// Client calls the external exchange-rate provider for live pair rates.
//
// The request URL embeds the API key, so failures must never echo the URL;
// error messages name only the currency pair.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Ensure Client implements the RateProvider port
var _ portsprov.RateProvider = (*Client)(nil)

// NewClient creates a rate-provider client. The timeout bounds the whole
// outbound call including body read.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		apiKey:     apiKey,
	}
}

// GetRate fetches the multiplier for converting one unit of from into to.
//
// A 4xx status means the provider rejected the pair and is reported as
// apperrors.ErrInvalidCurrencyPair so callers can answer with a client
// error. Every other failure (network, 5xx, non-success body, malformed
// JSON) is apperrors.ErrProviderUnavailable. No retries are attempted.
func (c *Client) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := c.baseURL + c.apiKey + "/pair/" + from + "/" + to

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to build provider request", apperrors.ErrProviderUnavailable)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to reach provider", apperrors.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return decimal.Zero, fmt.Errorf("%w: provider rejected pair %s/%s", apperrors.ErrInvalidCurrencyPair, from, to)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("%w: provider returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	}

	var body pairRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode provider response", apperrors.ErrProviderUnavailable)
	}

	if body.Result != resultSuccess {
		return decimal.Zero, fmt.Errorf("%w: provider reported result %q", apperrors.ErrProviderUnavailable, body.Result)
	}
	if body.ConversionRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: provider returned non-positive rate", apperrors.ErrProviderUnavailable)
	}

	return body.ConversionRate, nil
}
