package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the value of the "iss" claim on every access token.
const Issuer = "chirpy"

// Issue signs a new access token for subject, valid for ttl from now.
//
// Claims are exactly {iss, sub, iat, exp} at Unix-seconds granularity.
// Deterministic given identical inputs and now; callers supply the clock so
// expiry behavior stays testable.
func Issue(subject string, ttl time.Duration, secret string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Validate verifies tokenString against secret and returns the subject claim.
//
// Every failure mode (bad signature, non-HMAC algorithm, malformed token,
// expired, wrong issuer, empty subject) collapses to ErrInvalidToken so the
// boundary cannot leak which check failed. On success the subject is returned
// unchanged; callers must not trust any other claim.
func Validate(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
