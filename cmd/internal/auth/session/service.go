package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chirpy/cmd/identity"
	"chirpy/cmd/security/password"
	"chirpy/cmd/security/token"
)

const (
	// DefaultAccessTokenTTL is both the default and the ceiling for
	// access-token lifetimes. A login request may ask for less, never more.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the refresh-token lifetime.
	DefaultRefreshTokenTTL = 60 * 24 * time.Hour

	// createAttempts bounds the retry loop on token-key collisions.
	createAttempts = 3
)

// Config carries the tunable parts of the session service.
type Config struct {
	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// AccessTokenTTL caps access-token lifetimes. Zero means
	// DefaultAccessTokenTTL.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is the refresh-token lifetime. Zero means
	// DefaultRefreshTokenTTL.
	RefreshTokenTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.AccessTokenTTL <= 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.RefreshTokenTTL <= 0 {
		c.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	return c
}

// Service implements login, refresh and revoke over a user store and a
// refresh-token store.
type Service struct {
	users  identity.Store
	tokens Store
	hasher password.Config
	cfg    Config
	now    func() time.Time
}

// NewService constructs a Service. A nil now defaults to time.Now.
func NewService(users identity.Store, tokens Store, hasher password.Config, cfg Config, now func() time.Time) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("session: nil user store")
	}
	if tokens == nil {
		return nil, fmt.Errorf("session: nil token store")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("session: empty JWT secret")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		cfg:    cfg.withDefaults(),
		now:    now,
	}, nil
}

// LoginResult is what a successful login hands back to the boundary.
type LoginResult struct {
	User         identity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates an email/password pair and issues both tokens.
//
// requestedTTL shortens the access-token lifetime when it is positive and
// below the configured cap; otherwise the cap applies. An unknown email
// surfaces the identity not-found error unchanged, and a wrong password
// yields ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, pass string, requestedTTL time.Duration) (LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	ok, err := s.hasher.Verify(user.HashedPassword, pass)
	if err != nil {
		return LoginResult{}, fmt.Errorf("session: verify password: %w", err)
	}
	if !ok {
		return LoginResult{}, ErrUnauthorized
	}

	now := s.now().UTC()

	ttl := s.cfg.AccessTokenTTL
	if requestedTTL > 0 && requestedTTL < ttl {
		ttl = requestedTTL
	}

	access, err := token.Issue(user.ID.String(), ttl, s.cfg.JWTSecret, now)
	if err != nil {
		return LoginResult{}, fmt.Errorf("session: issue access token: %w", err)
	}

	refresh, err := s.createRefreshToken(ctx, user, now)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) createRefreshToken(ctx context.Context, user identity.User, now time.Time) (string, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		plain, err := newRefreshToken()
		if err != nil {
			return "", err
		}
		err = s.tokens.Create(ctx, RefreshToken{
			Token:     plain,
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
		})
		if err == nil {
			return plain, nil
		}
		if !errors.Is(err, errTokenExists) {
			return "", fmt.Errorf("session: store refresh token: %w", err)
		}
	}
	return "", fmt.Errorf("session: refresh token collision persisted after %d attempts", createAttempts)
}

// Refresh exchanges a live refresh token for a fresh access token. The
// refresh token is not rotated; it stays valid until expiry or revocation.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	row, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	if row.Revoked() || row.Expired(now) {
		return "", ErrUnauthorized
	}

	access, err := token.Issue(row.UserID.String(), s.cfg.AccessTokenTTL, s.cfg.JWTSecret, now)
	if err != nil {
		return "", fmt.Errorf("session: issue access token: %w", err)
	}
	return access, nil
}

// Revoke marks a refresh token revoked. Revoking an already-revoked token
// succeeds and re-stamps revoked_at; an unknown token yields ErrUnauthorized.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken, s.now().UTC())
}

// VerifyAccessToken validates a JWT and returns the subject user id.
func (s *Service) VerifyAccessToken(tokenString string) (string, error) {
	subject, err := token.Validate(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", ErrUnauthorized
	}
	return subject, nil
}
