package authapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirpy/cmd/identity"
	"chirpy/cmd/internal/auth/session"
	"chirpy/cmd/security/password"
)

func testHasher() password.Config {
	return password.Config{
		Params: password.Params{
			MemoryKiB:   8 * 1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
		Policy: password.Policy{MinLength: 8, MaxLength: 256},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := identity.NewMemoryStore()
	tokens := session.NewMemoryStore()

	sessions, err := session.NewService(users, tokens, testHasher(), session.Config{JWTSecret: "test-secret"}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	h, err := NewHandler(log, users, sessions, testHasher(), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("Unmarshal %q: %v", raw, err)
		}
	}
	return resp, payload
}

func createUser(t *testing.T, srv *httptest.Server, email, pass string) map[string]any {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/users", `{"email":"`+email+`","password":"`+pass+`"}`, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user status = %d, body %v", resp.StatusCode, body)
	}
	return body
}

func login(t *testing.T, srv *httptest.Server, email, pass string) map[string]any {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/login", `{"email":"`+email+`","password":"`+pass+`"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %v", resp.StatusCode, body)
	}
	return body
}

func TestCreateUser(t *testing.T) {
	srv := newTestServer(t)

	body := createUser(t, srv, "walt@breakingbad.com", "123456789")
	if body["email"] != "walt@breakingbad.com" {
		t.Fatalf("email = %v", body["email"])
	}
	if body["id"] == nil || body["createdAt"] == nil || body["updatedAt"] == nil {
		t.Fatalf("missing fields in response: %v", body)
	}
	// The password hash must never appear on the wire.
	for k := range body {
		if strings.Contains(strings.ToLower(k), "password") {
			t.Fatalf("response leaks field %q", k)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "walt@breakingbad.com", "123456789")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/users", `{"email":"walt@breakingbad.com","password":"somethingelse"}`, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateUserShortPassword(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/users", `{"email":"walt@breakingbad.com","password":"short"}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateUserBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/users", `{"email": nope`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	created := createUser(t, srv, "walt@breakingbad.com", "123456789")

	body := login(t, srv, "walt@breakingbad.com", "123456789")
	if body["id"] != created["id"] {
		t.Fatalf("login id = %v, want %v", body["id"], created["id"])
	}
	access, _ := body["token"].(string)
	refresh, _ := body["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("missing tokens in login response: %v", body)
	}
	if access == refresh {
		t.Fatal("access and refresh tokens must differ")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "walt@breakingbad.com", "123456789")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/login", `{"email":"walt@breakingbad.com","password":"wrong-password"}`, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/login", `{"email":"nobody@nowhere.com","password":"123456789"}`, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRefreshFlow(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "walt@breakingbad.com", "123456789")
	loggedIn := login(t, srv, "walt@breakingbad.com", "123456789")
	refresh := loggedIn["refreshToken"].(string)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/refresh", "", "Bearer "+refresh)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, body %v", resp.StatusCode, body)
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Fatalf("missing token in refresh response: %v", body)
	}
}

func TestRefreshMalformedHeader(t *testing.T) {
	srv := newTestServer(t)

	for _, header := range []string{"", "Basic abc", "bearer lowercase"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/refresh", "", header)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("header %q: status = %d, want 400", header, resp.StatusCode)
		}
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/refresh", "", "Bearer deadbeef")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRevokeFlow(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "walt@breakingbad.com", "123456789")
	loggedIn := login(t, srv, "walt@breakingbad.com", "123456789")
	refresh := loggedIn["refreshToken"].(string)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/revoke", "", "Bearer "+refresh)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("revoke status = %d, want 204", resp.StatusCode)
	}

	// Revoke again: idempotent, still 204.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/revoke", "", "Bearer "+refresh)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("second revoke status = %d, want 204", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/refresh", "", "Bearer "+refresh)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh after revoke status = %d, want 401", resp.StatusCode)
	}
}

func TestUpdateUser(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "walt@breakingbad.com", "123456789")
	loggedIn := login(t, srv, "walt@breakingbad.com", "123456789")
	access := loggedIn["token"].(string)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/users", `{"email":"heisenberg@breakingbad.com","password":"new-password"}`, "Bearer "+access)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %v", resp.StatusCode, body)
	}
	if body["email"] != "heisenberg@breakingbad.com" {
		t.Fatalf("email = %v", body["email"])
	}

	login(t, srv, "heisenberg@breakingbad.com", "new-password")
}

func TestUpdateUserRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/users", `{"email":"a@b.com","password":"123456789"}`, "Bearer not-a-jwt")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
