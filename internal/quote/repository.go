package quote

import (
	"context"
	"time"
)

// ListFilter narrows and pages a quote listing.
type ListFilter struct {
	// Query matches case-insensitively against stop locations and
	// addresses. Empty matches everything.
	Query string

	// Status restricts to one lifecycle state. Empty matches everything.
	Status Status

	// Limit caps the page size. Zero or negative uses the repository
	// default.
	Limit int

	// Cursor is the CreatedAt of the last quote on the previous page.
	// Zero starts from the newest quote.
	Cursor time.Time
}

// Repository defines the interface for quote storage. Listings are ordered
// newest first.
type Repository interface {
	// Save inserts or replaces a quote by ID.
	Save(ctx context.Context, q *Quote) error

	// Get retrieves a quote by ID. Returns ErrQuoteNotFound if missing.
	Get(ctx context.Context, id string) (*Quote, error)

	// List returns a filtered page of quotes and the cursor for the next
	// page. A zero cursor means no further pages.
	List(ctx context.Context, filter ListFilter) ([]*Quote, time.Time, error)

	// Delete removes a quote by ID. Returns ErrQuoteNotFound if missing.
	Delete(ctx context.Context, id string) error
}

const defaultListLimit = 50
