package chirps

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over the chirps table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("chirps: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, c Chirp) error {
	const op = "chirps.Create"

	_, err := s.pool.Exec(ctx, `
		INSERT INTO chirps (id, created_at, updated_at, body, user_id)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.CreatedAt, c.UpdatedAt, c.Body, c.UserID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (Chirp, error) {
	const op = "chirps.GetByID"

	var c Chirp
	err := s.pool.QueryRow(ctx, `
		SELECT id, created_at, updated_at, body, user_id
		FROM chirps
		WHERE id = $1
	`, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Body, &c.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Chirp{}, ErrNotFound
	}
	if err != nil {
		return Chirp{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context, f ListFilter) ([]Chirp, error) {
	const op = "chirps.List"

	// Order direction cannot be a bind parameter; both branches are
	// constant SQL.
	q := `
		SELECT id, created_at, updated_at, body, user_id
		FROM chirps
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at ASC
	`
	if f.Sort == SortDesc {
		q = `
			SELECT id, created_at, updated_at, body, user_id
			FROM chirps
			WHERE ($1::uuid IS NULL OR user_id = $1)
			ORDER BY created_at DESC
		`
	}

	rows, err := s.pool.Query(ctx, q, f.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []Chirp
	for rows.Next() {
		var c Chirp
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Body, &c.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "chirps.Delete"

	tag, err := s.pool.Exec(ctx, `DELETE FROM chirps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	const op = "chirps.DeleteAll"

	if _, err := s.pool.Exec(ctx, `DELETE FROM chirps`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
