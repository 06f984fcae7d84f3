package routing

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CacheMetrics records cache effectiveness for a provider-backed cache.
// Satisfied by middleware.ProviderMetrics.
type CacheMetrics interface {
	RecordCacheHit(provider, operation string)
	RecordCacheMiss(provider, operation string)
}

// ServiceConfig holds configuration for the routing service.
type ServiceConfig struct {
	// Provider is the directions provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records cache hits and misses. Optional.
	Metrics CacheMetrics

	// CacheTTL is how long route estimates are cached (default: 10 minutes).
	CacheTTL time.Duration

	// StaleTTL is how long an expired entry may still be served when the
	// provider is failing (default: 1 hour).
	StaleTTL time.Duration
}

// Service provides route estimates with caching and stale-if-error
// behavior. A provider failure is answered from an expired cache entry
// when one exists within the stale window.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	metrics  CacheMetrics
	cacheTTL time.Duration
	staleTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	estimate  *RouteEstimate
	fetchedAt time.Time
}

// NewService creates a new routing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	staleTTL := cfg.StaleTTL
	if staleTTL == 0 {
		staleTTL = 1 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		cacheTTL: cacheTTL,
		staleTTL: staleTTL,
		cache:    make(map[string]*cacheEntry),
	}
}

// Estimate returns a route estimate for the stops in order. Fresh cache
// entries are served without contacting the provider. On provider failure
// a stale entry is served when available, otherwise the error propagates
// so the caller can fall back to static distances.
func (s *Service) Estimate(ctx context.Context, waypoints []Waypoint) (*RouteEstimate, error) {
	key := CacheKey(waypoints)
	now := time.Now()

	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()

	if ok && now.Sub(entry.fetchedAt) < s.cacheTTL {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(s.provider.Name(), "estimate")
		}
		return entry.estimate, nil
	}

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(s.provider.Name(), "estimate")
	}

	estimate, err := s.provider.EstimateRoute(ctx, waypoints)
	if err != nil {
		if ok && now.Sub(entry.fetchedAt) < s.staleTTL {
			s.logger.Warn().Err(err).
				Str("provider", s.provider.Name()).
				Msg("route estimate failed, serving stale cache")
			return entry.estimate, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = &cacheEntry{estimate: estimate, fetchedAt: now}
	s.mu.Unlock()

	return estimate, nil
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
