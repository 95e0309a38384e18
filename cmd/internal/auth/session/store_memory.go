package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]RefreshToken
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]RefreshToken)}
}

func (s *MemoryStore) Create(ctx context.Context, t RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[t.Token]; exists {
		return errTokenExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *MemoryStore) GetByToken(ctx context.Context, token string) (RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[token]
	if !ok {
		return RefreshToken{}, ErrUnauthorized
	}
	return t, nil
}

func (s *MemoryStore) Revoke(ctx context.Context, token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return ErrUnauthorized
	}
	stamp := now
	t.RevokedAt = &stamp
	t.UpdatedAt = now
	s.tokens[token] = t
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = make(map[string]RefreshToken)
	return nil
}
