package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the quote service.
type ServiceConfig struct {
	// Repository is the quote storage backend.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service manages saved quotes.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new quote service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}
}

// Create saves a new quote. The ID, timestamps and draft status are
// assigned here; any values the caller set for them are overwritten.
func (s *Service) Create(ctx context.Context, q *Quote) (*Quote, error) {
	now := time.Now()
	q.ID = NewQuoteID()
	q.Status = StatusDraft
	q.CreatedAt = now
	q.UpdatedAt = now

	if err := s.repo.Save(ctx, q); err != nil {
		s.logger.Error().Err(err).Str("quote_id", q.ID).Msg("quote save failed")
		return nil, fmt.Errorf("%w: %v", ErrCouldNotSave, err)
	}

	s.logger.Info().
		Str("quote_id", q.ID).
		Int64("price", q.Price).
		Msg("quote created")

	return q, nil
}

// Update re-saves an existing quote. The original creation time is kept;
// the update is last-write-wins by ID.
func (s *Service) Update(ctx context.Context, q *Quote) (*Quote, error) {
	existing, err := s.repo.Get(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = time.Now()
	if q.Status == "" {
		q.Status = existing.Status
	}

	if err := s.repo.Save(ctx, q); err != nil {
		s.logger.Error().Err(err).Str("quote_id", q.ID).Msg("quote re-save failed")
		return nil, fmt.Errorf("%w: %v", ErrCouldNotSave, err)
	}

	return q, nil
}

// Get retrieves a quote by ID.
func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of quotes, newest first, with the cursor
// for the next page.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Quote, time.Time, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a quote by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("quote_id", id).Msg("quote deleted")
	return nil
}
