package feed

import (
	"time"

	"github.com/google/uuid"

	"chirpy/cmd/internal/chirps"
)

// Event is the wire format pushed to feed subscribers.
type Event struct {
	Type      string    `json:"type"`
	ChirpID   uuid.UUID `json:"chirpId"`
	AuthorID  uuid.UUID `json:"authorId,omitzero"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

const (
	EventChirpCreated = "chirp.created"
	EventChirpDeleted = "chirp.deleted"
)

// ChirpCreated builds the event for a freshly stored chirp.
func ChirpCreated(c chirps.Chirp) Event {
	return Event{
		Type:      EventChirpCreated,
		ChirpID:   c.ID,
		AuthorID:  c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

// ChirpDeleted builds the event for a removed chirp.
func ChirpDeleted(id uuid.UUID) Event {
	return Event{
		Type:    EventChirpDeleted,
		ChirpID: id,
	}
}
