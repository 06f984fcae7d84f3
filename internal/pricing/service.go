package pricing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the pricing params service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger
}

// Service owns the mutable pricing configuration. Params are loaded once
// at startup (or defaulted when absent), served as copies to computations,
// and replaced wholesale on admin updates.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu     sync.RWMutex
	params Params
}

// NewService creates the params service and loads the saved configuration.
// A missing document falls back to DefaultParams; a repository failure at
// startup also falls back but is logged, so the engine always has usable
// params.
func NewService(ctx context.Context, cfg ServiceConfig) *Service {
	s := &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}

	params, err := cfg.Repository.Load(ctx)
	switch {
	case err == nil:
		s.params = *params
	case errors.Is(err, ErrParamsNotFound):
		s.logger.Info().Msg("no saved pricing params, using defaults")
		s.params = DefaultParams()
	default:
		s.logger.Error().Err(err).Msg("failed to load pricing params, using defaults")
		s.params = DefaultParams()
	}

	return s
}

// Params returns a copy of the current pricing configuration.
func (s *Service) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Clone()
}

// Update replaces the configuration wholesale, refreshes the timestamp
// and persists the result. A persistence failure leaves the in-memory
// params untouched and is returned to the caller so the admin surface can
// report "could not save" instead of silently losing the change.
func (s *Service) Update(ctx context.Context, params Params) (Params, error) {
	params.LastUpdated = time.Now()

	if err := s.repo.Save(ctx, &params); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist pricing params")
		return Params{}, err
	}

	s.mu.Lock()
	s.params = params.Clone()
	s.mu.Unlock()

	s.logger.Info().
		Float64("base_rate", params.BaseRate).
		Float64("fuel_surcharge", params.FuelSurcharge).
		Float64("profit_margin_pct", params.ProfitMarginPercentage).
		Msg("pricing params updated")

	return params, nil
}
