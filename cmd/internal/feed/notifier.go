package feed

import (
	"github.com/google/uuid"

	"chirpy/cmd/internal/chirps"
)

// Notifier adapts the hub to the chirp handler's notification interface.
type Notifier struct {
	hub *Hub
}

// NewNotifier constructs a Notifier over the given hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ChirpCreated(c chirps.Chirp) {
	n.hub.Publish(ChirpCreated(c))
}

func (n *Notifier) ChirpDeleted(id uuid.UUID) {
	n.hub.Publish(ChirpDeleted(id))
}
