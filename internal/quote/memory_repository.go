package quote

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// InMemoryRepository implements Repository with in-memory storage.
// Intended for tests and local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	quotes map[string]*Quote
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates a new in-memory quote repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		quotes: make(map[string]*Quote),
	}
}

// Save inserts or replaces a quote by ID.
func (r *InMemoryRepository) Save(ctx context.Context, q *Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *q
	cpy.Stops = append([]Stop(nil), q.Stops...)
	r.quotes[q.ID] = &cpy

	return nil
}

// Get retrieves a quote by ID.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}

	cpy := *q
	cpy.Stops = append([]Stop(nil), q.Stops...)
	return &cpy, nil
}

// List returns a filtered page of quotes, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Quote, time.Time, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	matched := make([]*Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		if !matches(q, filter) {
			continue
		}
		cpy := *q
		cpy.Stops = append([]Stop(nil), q.Stops...)
		matched = append(matched, &cpy)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	var next time.Time
	if len(matched) == limit {
		next = matched[len(matched)-1].CreatedAt
	}

	return matched, next, nil
}

// Delete removes a quote by ID.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[id]; !ok {
		return ErrQuoteNotFound
	}
	delete(r.quotes, id)

	return nil
}

func matches(q *Quote, filter ListFilter) bool {
	if filter.Status != "" && q.Status != filter.Status {
		return false
	}
	if !filter.Cursor.IsZero() && !q.CreatedAt.Before(filter.Cursor) {
		return false
	}
	if filter.Query == "" {
		return true
	}

	needle := strings.ToLower(filter.Query)
	for _, s := range q.Stops {
		if strings.Contains(strings.ToLower(s.Location), needle) ||
			strings.Contains(strings.ToLower(s.Address), needle) {
			return true
		}
	}
	return false
}
