package authapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chirpy/cmd/identity"
	"chirpy/cmd/internal/auth/session"
	"chirpy/cmd/security/password"
	"chirpy/cmd/security/token"
)

// Handler wires the account and session endpoints to their services.
type Handler struct {
	log      *slog.Logger
	users    identity.Store
	sessions *session.Service
	hasher   password.Config
	now      func() time.Time
}

// NewHandler constructs a Handler. A nil now defaults to time.Now.
func NewHandler(log *slog.Logger, users identity.Store, sessions *session.Service, hasher password.Config, now func() time.Time) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if users == nil {
		return nil, fmt.Errorf("authapi: nil user store")
	}
	if sessions == nil {
		return nil, fmt.Errorf("authapi: nil session service")
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		log:      log,
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		now:      now,
	}, nil
}

// Register wires the routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.handleCreateUser)
	mux.HandleFunc("PUT /api/users", h.handleUpdateUser)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/refresh", h.handleRefresh)
	mux.HandleFunc("POST /api/revoke", h.handleRevoke)
}

// Authenticate resolves the caller's user id from the Authorization
// header's JWT. Exported so other handlers can guard their routes with
// the same check.
func (h *Handler) Authenticate(r *http.Request) (uuid.UUID, error) {
	bearer, err := token.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return uuid.Nil, err
	}
	subject, err := h.sessions.VerifyAccessToken(bearer)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, session.ErrUnauthorized
	}
	return id, nil
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	u, err := h.users.CreateUser(r.Context(), identity.CreateUserInput{
		Email:          req.Email,
		HashedPassword: hash,
		Now:            h.now().UTC(),
	})
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Authenticate(r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	u, err := h.users.UpdateUser(r.Context(), identity.UpdateUserInput{
		ID:             userID,
		Email:          req.Email,
		HashedPassword: hash,
		Now:            h.now().UTC(),
	})
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.sessions.Login(r.Context(), req.Email, req.Password, time.Duration(req.ExpiresInSeconds)*time.Second)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:           res.User.ID,
		CreatedAt:    res.User.CreatedAt,
		UpdatedAt:    res.User.UpdatedAt,
		Email:        res.User.Email,
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	bearer, err := token.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	access, err := h.sessions.Refresh(r.Context(), bearer)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{Token: access})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	bearer, err := token.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	if err := h.sessions.Revoke(r.Context(), bearer); err != nil {
		h.writeFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeFailure maps service errors onto HTTP statuses. Everything not
// classified below is a 500 with a generic message; the real error goes
// to the log, never the client.
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, token.ErrMalformedAuthHeader):
		writeError(w, http.StatusBadRequest, "malformed authorization header")
	case errors.Is(err, password.ErrPasswordTooShort), errors.Is(err, password.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case identity.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, session.ErrUnauthorized), errors.Is(err, token.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case identity.IsNotFound(err):
		writeError(w, http.StatusNotFound, "user not found")
	case identity.IsConflict(err):
		writeError(w, http.StatusConflict, "email already taken")
	default:
		h.log.Error("authapi.request.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
