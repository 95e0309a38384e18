package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"chirpy/cmd/identity/ids"
)

const (
	wsSubprotocol = "chirpy.feed.v1"

	wsDefaultSendQueueSize = 256
	wsDefaultWriteTimeout  = 5 * time.Second
)

// Gateway upgrades HTTP requests to websocket feed subscriptions.
//
// The feed is read-only: client frames are drained and discarded, and the
// read loop doubles as disconnect detection.
type Gateway struct {
	log *slog.Logger
	hub *Hub

	// OriginPatterns authorizes cross-origin upgrades; same-host is always
	// allowed by websocket.Accept. Empty means same-host only.
	originPatterns []string

	writeTimeout  time.Duration
	sendQueueSize int
}

// NewGateway constructs a Gateway over the given hub.
func NewGateway(log *slog.Logger, hub *Hub, originPatterns []string) *Gateway {
	return &Gateway{
		log:            log,
		hub:            hub,
		originPatterns: originPatterns,
		writeTimeout:   wsDefaultWriteTimeout,
		sendQueueSize:  wsDefaultSendQueueSize,
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:   []string{wsSubprotocol},
		OriginPatterns: g.originPatterns,
	})
	if err != nil {
		g.log.Info("feed.accept.fail", "err", err, "remote", r.RemoteAddr)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	if sp := conn.Subprotocol(); sp != wsSubprotocol {
		g.log.Info("feed.reject.subprotocol", "got", sp, "want", wsSubprotocol)
		_ = conn.Close(websocket.StatusProtocolError, "subprotocol required")
		return
	}

	id, err := ids.NewULID(time.Now().UTC())
	if err != nil {
		g.log.Error("feed.client_id.fail", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "internal error")
		return
	}

	client := NewClient(id, g.sendQueueSize)
	g.hub.Subscribe(client)
	defer g.hub.Unsubscribe(client.ID)

	ctx := r.Context()

	go g.readLoop(ctx, conn, client)
	g.writeLoop(ctx, conn, client)
}

// readLoop drains incoming frames until the peer goes away, then signals
// shutdown.
func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, client *Client) {
	defer client.Close()

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status == -1 && !errors.Is(err, context.Canceled) {
				g.log.Info("feed.read.fail", "client_id", client.ID, "err", err)
			}
			return
		}
	}
}

func (g *Gateway) writeLoop(ctx context.Context, conn *websocket.Conn, client *Client) {
	for {
		select {
		case <-client.Done():
			return
		case <-ctx.Done():
			return
		case event := <-client.Send:
			if err := g.writeEvent(ctx, conn, event); err != nil {
				g.log.Info("feed.write.fail", "client_id", client.ID, "err", err)
				return
			}
		}
	}
}

func (g *Gateway) writeEvent(ctx context.Context, conn *websocket.Conn, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, g.writeTimeout)
	defer cancel()

	return conn.Write(wctx, websocket.MessageText, payload)
}
