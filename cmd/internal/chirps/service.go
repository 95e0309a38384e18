package chirps

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxBodyLength caps chirp bodies, counted in characters.
const MaxBodyLength = 140

// Service validates, filters and persists chirps.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a Service. A nil now defaults to time.Now.
func NewService(store Store, now func() time.Time) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("chirps: nil store")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}, nil
}

// Create validates a chirp body, masks profanities and stores the result.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, body string) (Chirp, error) {
	if body == "" {
		return Chirp{}, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return Chirp{}, ErrTooLong
	}

	now := s.now().UTC()
	c := Chirp{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Body:      cleanBody(body),
		UserID:    userID,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return Chirp{}, err
	}
	return c, nil
}

// Get loads a single chirp.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Chirp, error) {
	return s.store.GetByID(ctx, id)
}

// List returns chirps, optionally restricted to one author and ordered by
// created_at. An empty sort means ascending.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Chirp, error) {
	if f.Sort == "" {
		f.Sort = SortAsc
	}
	if f.Sort != SortAsc && f.Sort != SortDesc {
		return nil, fmt.Errorf("chirps: invalid sort %q", f.Sort)
	}
	return s.store.List(ctx, f)
}

// Delete removes a chirp if callerID is its author. Unknown chirps yield
// ErrNotFound, foreign chirps ErrNotOwner; ownership is checked before
// deletion so a non-owner learns the chirp exists but nothing more.
func (s *Service) Delete(ctx context.Context, callerID, chirpID uuid.UUID) error {
	c, err := s.store.GetByID(ctx, chirpID)
	if err != nil {
		return err
	}
	if c.UserID != callerID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, chirpID)
}
