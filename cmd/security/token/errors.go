package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrMalformedAuthHeader is returned when an Authorization header is
	// absent or does not carry the Bearer scheme. Maps to 400 at the boundary.
	ErrMalformedAuthHeader = errors.New("malformed authorization header")

	// ErrInvalidToken is returned for any access-token verification failure:
	// bad signature, wrong algorithm, malformed encoding, expired, or a
	// missing subject claim. Maps to 401 at the boundary.
	ErrInvalidToken = errors.New("invalid token")
)
