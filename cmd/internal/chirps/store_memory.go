package chirps

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	chirps map[uuid.UUID]Chirp
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chirps: make(map[uuid.UUID]Chirp)}
}

func (s *MemoryStore) Create(ctx context.Context, c Chirp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chirps[c.ID] = c
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (Chirp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chirps[id]
	if !ok {
		return Chirp{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) List(ctx context.Context, f ListFilter) ([]Chirp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Chirp
	for _, c := range s.chirps {
		if f.AuthorID != nil && c.UserID != *f.AuthorID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Sort == SortDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chirps[id]; !ok {
		return ErrNotFound
	}
	delete(s.chirps, id)
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chirps = make(map[uuid.UUID]Chirp)
	return nil
}
