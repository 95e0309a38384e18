package session

import "errors"

// ErrUnauthorized means the presented credential (password or refresh
// token) is wrong, expired, or revoked. The HTTP boundary maps it to 401
// without detail.
var ErrUnauthorized = errors.New("session: unauthorized")

// errTokenExists signals a primary-key collision on insert. With 256 bits
// of randomness per token this is effectively unreachable, but the store
// reports it so Create can retry rather than surface a driver error.
var errTokenExists = errors.New("session: refresh token already exists")
