package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over the refresh_tokens table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("session: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, t RefreshToken) error {
	const op = "session.Create"

	_, err := s.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, created_at, updated_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, t.Token, t.UserID, t.CreatedAt, t.UpdatedAt, t.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errTokenExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PostgresStore) GetByToken(ctx context.Context, token string) (RefreshToken, error) {
	const op = "session.GetByToken"

	var t RefreshToken
	err := s.pool.QueryRow(ctx, `
		SELECT token, user_id, created_at, updated_at, expires_at, revoked_at
		FROM refresh_tokens
		WHERE token = $1
	`, token).Scan(&t.Token, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &t.ExpiresAt, &t.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RefreshToken{}, ErrUnauthorized
	}
	if err != nil {
		return RefreshToken{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func (s *PostgresStore) Revoke(ctx context.Context, token string, now time.Time) error {
	const op = "session.Revoke"

	tag, err := s.pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = $2, updated_at = $2
		WHERE token = $1
	`, token, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUnauthorized
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	const op = "session.DeleteAll"

	if _, err := s.pool.Exec(ctx, `DELETE FROM refresh_tokens`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
