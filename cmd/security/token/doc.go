// Package token provides the access-token codec and bearer-header parsing
// for Chirpy.
//
// Access tokens are JWTs signed with HMAC-SHA256 using a single process-wide
// secret. They are self-contained: a valid signature plus an unexpired "exp"
// claim is sufficient and no server-side lookup is performed. Revoking access
// happens only indirectly, by revoking the refresh token that would mint the
// next one.
//
// Security notes:
// - Validate rejects tokens signed with a non-HMAC algorithm.
// - The signing secret is never logged or echoed back in errors.
package token
