// Package main provides a CI-friendly smoke test for the live chirp feed.
//
// It validates:
//   - websocket handshake + subprotocol selection on /api/chirps/feed
//   - user signup + login over the JSON API
//   - chirp creation fanning out to every connected feed client
//   - chirp deletion fanning out as well
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"
)

const feedSubprotocol = "chirpy.feed.v1"

type feedEvent struct {
	Type      string `json:"type"`
	ChirpID   string `json:"chirpId"`
	AuthorID  string `json:"authorId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

type feedClient struct {
	name  string
	conn  *websocket.Conn
	inbox chan feedEvent
}

func main() {
	var (
		baseURL = flag.String("base", "http://127.0.0.1:8080", "Chirpy base URL")
		wsURL   = flag.String("ws", "ws://127.0.0.1:8080/api/chirps/feed", "Feed WebSocket URL")
		email   = flag.String("email", "smoke@example.com", "Account email to create/login")
		pass    = flag.String("password", "smoke-password", "Account password")
		text    = flag.String("text", "smoke chirp", "Chirp body to post")
		timeout = flag.Duration("timeout", 7*time.Second, "Per-step timeout")
	)
	flag.Parse()

	ctx := context.Background()

	a := mustConnect(ctx, "A", *wsURL, *timeout)
	defer closeWS(a.conn)
	b := mustConnect(ctx, "B", *wsURL, *timeout)
	defer closeWS(b.conn)

	access := mustLogin(*baseURL, *email, *pass, *timeout)

	chirpID := mustPostChirp(*baseURL, access, *text, *timeout)

	for _, c := range []*feedClient{a, b} {
		ev := c.mustRead(ctx, "chirp.created", *timeout)
		if ev.ChirpID != chirpID {
			fatalf("%s: chirp.created id mismatch: got=%q want=%q", c.name, ev.ChirpID, chirpID)
		}
		if ev.Body != *text {
			fatalf("%s: chirp.created body mismatch: got=%q want=%q", c.name, ev.Body, *text)
		}
	}

	mustDeleteChirp(*baseURL, access, chirpID, *timeout)

	for _, c := range []*feedClient{a, b} {
		ev := c.mustRead(ctx, "chirp.deleted", *timeout)
		if ev.ChirpID != chirpID {
			fatalf("%s: chirp.deleted id mismatch: got=%q want=%q", c.name, ev.ChirpID, chirpID)
		}
	}

	fmt.Printf("OK: chirp_id=%s subscribers=2\n", chirpID)
}

func mustConnect(parent context.Context, name, wsURL string, stepTimeout time.Duration) *feedClient {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	conn, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		Subprotocols: []string{feedSubprotocol},
	})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		fatalf("connect %s: %v", name, err)
	}
	if sp := conn.Subprotocol(); sp != feedSubprotocol {
		fatalf("connect %s: subprotocol mismatch: got=%q want=%q", name, sp, feedSubprotocol)
	}

	c := &feedClient{name: name, conn: conn, inbox: make(chan feedEvent, 64)}
	go c.readLoop()
	return c
}

func (c *feedClient) readLoop() {
	defer close(c.inbox)

	for {
		_, data, err := c.conn.Read(context.Background())
		if err != nil {
			return
		}
		var ev feedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			fatalf("%s: bad feed payload %q: %v", c.name, data, err)
		}
		c.inbox <- ev
	}
}

func (c *feedClient) mustRead(parent context.Context, wantType string, stepTimeout time.Duration) feedEvent {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		fatalf("%s: timeout waiting for %q", c.name, wantType)
	case ev, ok := <-c.inbox:
		if !ok {
			fatalf("%s: connection closed while waiting for %q", c.name, wantType)
		}
		if ev.Type != wantType {
			fatalf("%s: unexpected event type: got=%q want=%q", c.name, ev.Type, wantType)
		}
		return ev
	}
	return feedEvent{}
}

// mustLogin creates the account if needed, then logs in and returns the
// access token.
func mustLogin(baseURL, email, pass string, stepTimeout time.Duration) string {
	client := &http.Client{Timeout: stepTimeout}
	creds, _ := json.Marshal(map[string]string{"email": email, "password": pass})

	resp, err := client.Post(baseURL+"/api/users", "application/json", bytes.NewReader(creds))
	if err != nil {
		fatalf("create user: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		fatalf("create user: status %d", resp.StatusCode)
	}

	resp, err = client.Post(baseURL+"/api/login", "application/json", bytes.NewReader(creds))
	if err != nil {
		fatalf("login: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		fatalf("login: status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fatalf("login: decode: %v", err)
	}
	if body.Token == "" {
		fatalf("login: empty access token")
	}
	return body.Token
}

func mustPostChirp(baseURL, access, text string, stepTimeout time.Duration) string {
	client := &http.Client{Timeout: stepTimeout}
	payload, _ := json.Marshal(map[string]string{"body": text})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/chirps", bytes.NewReader(payload))
	if err != nil {
		fatalf("post chirp: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := client.Do(req)
	if err != nil {
		fatalf("post chirp: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		fatalf("post chirp: status %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fatalf("post chirp: decode: %v", err)
	}
	return body.ID
}

func mustDeleteChirp(baseURL, access, chirpID string, stepTimeout time.Duration) {
	client := &http.Client{Timeout: stepTimeout}

	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/chirps/"+chirpID, nil)
	if err != nil {
		fatalf("delete chirp: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := client.Do(req)
	if err != nil {
		fatalf("delete chirp: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		fatalf("delete chirp: status %d", resp.StatusCode)
	}
}

func closeWS(conn *websocket.Conn) {
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}
