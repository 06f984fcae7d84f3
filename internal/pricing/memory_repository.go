package pricing

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	params *Params
}

// NewInMemoryRepository creates a new in-memory pricing params repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Load retrieves the saved params.
func (r *InMemoryRepository) Load(_ context.Context) (*Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.params == nil {
		return nil, ErrParamsNotFound
	}

	cpy := r.params.Clone()
	return &cpy, nil
}

// Save persists the params, replacing any previous version.
func (r *InMemoryRepository) Save(_ context.Context, params *Params) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := params.Clone()
	r.params = &cpy
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
