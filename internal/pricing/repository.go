package pricing

import "context"

// Repository defines the interface for pricing parameter persistence.
// Params are stored as a single document and replaced wholesale.
type Repository interface {
	// Load retrieves the saved params.
	// Returns ErrParamsNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*Params, error)

	// Save persists the params, replacing any previous version.
	Save(ctx context.Context, params *Params) error
}
