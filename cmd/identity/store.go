package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is Chirpy's security principal.
// HashedPassword is the encoded Argon2id string and must never leave the
// server boundary.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateUserInput describes a registration request. The password arrives
// already hashed; this package does not see plaintext credentials.
type CreateUserInput struct {
	Email          string
	HashedPassword string
	Now            time.Time
}

// UpdateUserInput replaces a user's email and password hash.
type UpdateUserInput struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	Now            time.Time
}

// Store is the user persistence boundary.
type Store interface {
	// CreateUser inserts a new user. A duplicate email yields ErrConflict.
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByEmail returns the user owning email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// GetUserByID returns the user with the given id, or ErrNotFound.
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)

	// UpdateUser replaces email and password hash, stamping updated_at.
	// Missing user yields ErrNotFound; a duplicate email yields ErrConflict.
	UpdateUser(ctx context.Context, in UpdateUserInput) (User, error)

	// DeleteAll wipes every user. Dev/admin reset only; cascades are the
	// schema's responsibility.
	DeleteAll(ctx context.Context) error
}
