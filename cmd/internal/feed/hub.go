package feed

import (
	"log/slog"
	"sync"
)

// Hub is the in-memory subscriber set with broadcast fanout.
//
// Concurrency guarantees:
// - Subscribe/Unsubscribe are safe under concurrent Publish.
// - Publish never blocks; full queues and closing clients are skipped.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub constructs a Hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*Client),
	}
}

// Subscribe adds a client to the fanout set.
func (h *Hub) Subscribe(c *Client) {
	if c == nil || c.ID == "" {
		return
	}

	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	h.log.Info("feed.subscribe", "client_id", c.ID)
}

// Unsubscribe removes a client and signals its shutdown. Removal happens
// before Close so a broadcaster never queues into a client that is gone
// from the set.
func (h *Hub) Unsubscribe(id string) {
	if id == "" {
		return
	}

	h.mu.Lock()
	c := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if c != nil {
		c.Close()
	}

	h.log.Info("feed.unsubscribe", "client_id", id)
}

// Publish fans an event out to all subscribers without blocking.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case <-c.Done():
			continue
		default:
		}

		select {
		case c.Send <- e:
		default:
			// Drop rather than block the whole feed.
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
