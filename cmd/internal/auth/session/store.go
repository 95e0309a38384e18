package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshToken mirrors a refresh_tokens row. Token is the primary key;
// the opaque string presented by the client is looked up verbatim.
type RefreshToken struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the token has been revoked.
func (t RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has passed at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Store abstracts persistence for refresh tokens.
type Store interface {
	// Create inserts a new refresh token row. A primary-key collision
	// yields errTokenExists so the caller can regenerate and retry.
	Create(ctx context.Context, t RefreshToken) error

	// GetByToken loads a row by exact token match. A missing row yields
	// ErrUnauthorized; expiry and revocation checks are the caller's.
	GetByToken(ctx context.Context, token string) (RefreshToken, error)

	// Revoke stamps revoked_at and updated_at on the row, whether or not
	// it was already revoked. A missing row yields ErrUnauthorized.
	Revoke(ctx context.Context, token string, now time.Time) error

	// DeleteAll wipes the table.
	DeleteAll(ctx context.Context) error
}
