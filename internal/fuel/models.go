// Package fuel provides current fuel pump prices with caching and a
// hard fallback, so a price is always available to the quoting flow.
package fuel

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for fuel price operations.
var (
	// ErrProviderUnavailable indicates the fuel price provider is down or
	// the circuit breaker is open.
	ErrProviderUnavailable = errors.New("fuel price provider unavailable")
)

// Source labels for the FuelData.Source field.
const (
	SourceLive     = "NNPC Retail"
	SourceCached   = "Cached"
	SourceFallback = "Fallback"
)

// FallbackPricePerLiter is the hard-coded pump price in naira used when
// neither a live fetch nor a fresh cache entry is available.
const FallbackPricePerLiter = 750

// FuelData is a fuel price observation.
type FuelData struct {
	PricePerLiter float64   `json:"pricePerLiter"`
	Currency      string    `json:"currency"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Source        string    `json:"source"`
}

// Provider defines the interface for fuel price providers.
type Provider interface {
	// GetCurrentPrice fetches the current pump price.
	GetCurrentPrice(ctx context.Context) (*FuelData, error)

	// Name returns the provider identifier for logging and health tracking.
	Name() string
}
