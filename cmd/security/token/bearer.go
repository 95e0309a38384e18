package token

import "strings"

// bearerPrefix is the exact, case-sensitive scheme prefix required by
// BearerToken. RFC 6750 allows case-insensitive schemes; Chirpy is stricter
// on purpose so that clients fail loudly instead of intermittently.
const bearerPrefix = "Bearer "

// BearerToken extracts the raw token from an Authorization header value.
//
// The header must start with the literal "Bearer " prefix; the remainder is
// returned with surrounding whitespace trimmed. A missing header or a wrong
// scheme yields ErrMalformedAuthHeader. Pure parse, no side effects.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMalformedAuthHeader
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), nil
}
