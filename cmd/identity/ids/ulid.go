// Package ids generates ULID strings for ephemeral identifiers: request
// ids in the logging middleware and feed subscriber ids. Durable entities
// (users, chirps) use uuid instead.
package ids

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID returns a new ULID string (26 chars), lexicographically sortable
// by creation time.
func NewULID(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
