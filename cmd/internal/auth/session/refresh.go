package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// refreshTokenBytes is the entropy of an opaque refresh token. 32 bytes
// encode to 64 hex characters on the wire and in the database.
const refreshTokenBytes = 32

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
