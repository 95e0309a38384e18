package chirps

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Chirp is a stored message.
type Chirp struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Body      string
	UserID    uuid.UUID
}

// SortOrder selects the created_at ordering for listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListFilter narrows and orders a listing. A nil AuthorID means all
// authors; an empty Sort means ascending.
type ListFilter struct {
	AuthorID *uuid.UUID
	Sort     SortOrder
}

// Store abstracts chirp persistence.
type Store interface {
	// Create inserts a chirp.
	Create(ctx context.Context, c Chirp) error

	// GetByID loads a chirp, yielding ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (Chirp, error)

	// List returns chirps matching the filter, ordered by created_at.
	List(ctx context.Context, f ListFilter) ([]Chirp, error)

	// Delete removes a chirp, yielding ErrNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll wipes the table.
	DeleteAll(ctx context.Context) error
}
