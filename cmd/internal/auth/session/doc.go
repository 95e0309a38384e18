// Package session implements the credential and session lifecycle:
// login, access-token refresh, and refresh-token revocation.
//
// Access tokens are short-lived JWTs issued by cmd/security/token.
// Refresh tokens are long-lived opaque random strings persisted in the
// refresh_tokens table; the token string itself is the primary key and
// lookups are exact matches. A refresh token stays valid until it
// expires or is revoked, and revocation is a soft delete that stamps
// revoked_at rather than removing the row.
package session
