package shift

import (
	"context"
	"time"
)

// Repository defines the storage interface for the shifts of a session.
type Repository interface {
	// Create inserts a shift. Returns ErrDuplicateShift if the id is taken.
	Create(ctx context.Context, s Shift) error

	// Update replaces the shift with the same id, keeping its position.
	// Returns ErrShiftNotFound if the id is unknown.
	Update(ctx context.Context, s Shift) error

	// Delete removes a shift by id.
	// Returns ErrShiftNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Get retrieves a shift by id.
	Get(ctx context.Context, id string) (Shift, error)

	// List returns every shift in insertion order.
	List(ctx context.Context) ([]Shift, error)

	// ListBetween returns the shifts intersecting [start, end).
	ListBetween(ctx context.Context, start, end time.Time) ([]Shift, error)

	// ListOverlapping returns the shifts on a counter intersecting [start, end).
	ListOverlapping(ctx context.Context, counterID string, start, end time.Time) ([]Shift, error)

	// Count returns the number of stored shifts.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the repository.
	Close() error
}
