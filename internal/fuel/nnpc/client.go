// Package nnpc provides a fuel price client backed by the NNPC retail
// price feed, wrapped in the resilient HTTP client.
package nnpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/provider/resilience"
)

const defaultBaseURL = "https://retail.nnpcgroup.com/api/v1"

// ClientConfig holds configuration for the NNPC retail client.
type ClientConfig struct {
	// BaseURL is the NNPC retail API base URL.
	// Default: https://retail.nnpcgroup.com/api/v1
	BaseURL string

	// APIKey is the NNPC retail API key, when the deployment has one.
	APIKey string

	// Timeout is the request timeout. Default: 10 seconds
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger

	// Registry is the provider health registry.
	Registry *resilience.Registry
}

// Client fetches petrol pump prices from the NNPC retail feed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// priceResponse is the NNPC retail feed payload.
type priceResponse struct {
	Products []struct {
		Product       string  `json:"product"`
		PricePerLiter float64 `json:"price_per_liter"`
		Currency      string  `json:"currency"`
		EffectiveDate string  `json:"effective_date"`
	} `json:"products"`
}

// NewClient creates a new NNPC retail client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	clientCfg := resilience.DefaultClientConfig("nnpc")
	if cfg.Timeout > 0 {
		clientCfg.Timeout = cfg.Timeout
	}
	clientCfg.Registry = cfg.Registry

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: resilience.NewClient(clientCfg),
		logger:     cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return "nnpc"
}

// GetCurrentPrice fetches the current petrol pump price.
func (c *Client) GetCurrentPrice(ctx context.Context) (*fuel.FuelData, error) {
	url := fmt.Sprintf("%s/prices/lagos", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Msg("nnpc price request failed")
		return nil, fmt.Errorf("%w: %v", fuel.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", fuel.ErrProviderUnavailable, resp.StatusCode)
	}

	var priceResp priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	for _, p := range priceResp.Products {
		if p.Product != "PMS" {
			continue
		}
		if p.PricePerLiter <= 0 {
			return nil, fmt.Errorf("%w: non-positive price in feed", fuel.ErrProviderUnavailable)
		}

		currency := p.Currency
		if currency == "" {
			currency = "NGN"
		}

		return &fuel.FuelData{
			PricePerLiter: p.PricePerLiter,
			Currency:      currency,
			UpdatedAt:     time.Now(),
			Source:        fuel.SourceLive,
		}, nil
	}

	return nil, fmt.Errorf("%w: no petrol price in feed", fuel.ErrProviderUnavailable)
}
