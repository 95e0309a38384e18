package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate(t *testing.T) {
	now := time.Now().UTC()
	tok, err := Issue("user-123", time.Hour, "secret", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected three-part token, got %d parts", len(parts))
	}

	sub, err := Validate(tok, "secret")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sub != "user-123" {
		t.Fatalf("subject = %q, want user-123", sub)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := Issue("user-123", time.Hour, "secret", time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := Validate(tok, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateExpired(t *testing.T) {
	// Issued far enough in the past that ttl has already elapsed.
	past := time.Now().UTC().Add(-2 * time.Hour)
	tok, err := Issue("user-123", time.Hour, "secret", past)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := Validate(tok, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := Validate(tok, "secret"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Validate(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Validate(tok, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestValidateRejectsNonHMACAlgorithm(t *testing.T) {
	// alg=none with an empty signature must never validate.
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "user-123",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Validate(tok, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
