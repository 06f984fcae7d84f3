package fuel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the fuel price service.
type ServiceConfig struct {
	// Provider is the fuel price provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheFreshness is how long a fetched price stays reusable after a
	// provider failure (default: 1 hour).
	CacheFreshness time.Duration
}

// Service provides the current fuel price with a cache and a hard
// fallback. A provider failure is never surfaced to callers: the last
// cached price is reused while fresh, and the built-in fallback price is
// served (and re-cached) once the cache has gone stale.
type Service struct {
	provider       Provider
	logger         zerolog.Logger
	cacheFreshness time.Duration

	mu     sync.RWMutex
	cached *FuelData
}

// NewService creates a new fuel price service.
func NewService(cfg ServiceConfig) *Service {
	freshness := cfg.CacheFreshness
	if freshness == 0 {
		freshness = 1 * time.Hour
	}

	return &Service{
		provider:       cfg.Provider,
		logger:         cfg.Logger,
		cacheFreshness: freshness,
	}
}

// CurrentPrice returns the current fuel price. Never fails.
func (s *Service) CurrentPrice(ctx context.Context) *FuelData {
	data, err := s.provider.GetCurrentPrice(ctx)
	if err == nil {
		s.mu.Lock()
		s.cached = data
		s.mu.Unlock()
		return data
	}

	s.logger.Warn().Err(err).
		Str("provider", s.provider.Name()).
		Msg("fuel price fetch failed, falling back to cache")

	return s.cachedOrFallback()
}

// cachedOrFallback returns the cached price while it is fresh, otherwise
// the hard-coded fallback, which is re-cached so subsequent failures keep
// serving a consistent figure.
func (s *Service) cachedOrFallback() *FuelData {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && now.Sub(s.cached.UpdatedAt) < s.cacheFreshness {
		cached := *s.cached
		cached.Source = SourceCached
		return &cached
	}

	fallback := &FuelData{
		PricePerLiter: FallbackPricePerLiter,
		Currency:      "NGN",
		UpdatedAt:     now,
		Source:        SourceFallback,
	}
	s.cached = fallback

	s.logger.Warn().
		Float64("price_per_liter", fallback.PricePerLiter).
		Msg("fuel price cache stale, using fallback price")

	return fallback
}

// Refresh fetches the current price and updates the cache. Used by the
// background refresh worker so API requests mostly hit a warm cache.
func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.provider.GetCurrentPrice(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = data
	s.mu.Unlock()

	s.logger.Debug().
		Float64("price_per_liter", data.PricePerLiter).
		Str("source", data.Source).
		Msg("fuel price cache refreshed")

	return nil
}

// Cached returns the cached price without contacting the provider, or
// nil when nothing has been cached yet.
func (s *Service) Cached() *FuelData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil {
		return nil
	}
	cached := *s.cached
	return &cached
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
