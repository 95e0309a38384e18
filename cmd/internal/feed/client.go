package feed

import "sync"

// Client represents one connected websocket subscriber.
//
// Send is never closed by the hub; broadcasters may still hold the pointer
// while the connection goroutines tear down, and closing would panic them.
// done carries the shutdown signal instead, and Close is idempotent.
type Client struct {
	ID   string
	Send chan Event

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a Client with a bounded send queue.
func NewClient(id string, sendQueueSize int) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = 64
	}
	return &Client{
		ID:   id,
		Send: make(chan Event, sendQueueSize),
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the client is shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close signals the client goroutines to stop (idempotent).
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
