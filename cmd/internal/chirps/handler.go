package chirps

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chirpy/cmd/internal/auth/session"
	"chirpy/cmd/security/token"
)

// Authenticator resolves the caller's user id from a request. The auth
// handler provides the production implementation.
type Authenticator interface {
	Authenticate(r *http.Request) (uuid.UUID, error)
}

// Notifier receives chirp lifecycle events. The live feed implements it;
// tests use a recording fake.
type Notifier interface {
	ChirpCreated(c Chirp)
	ChirpDeleted(id uuid.UUID)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) ChirpCreated(Chirp)     {}
func (NopNotifier) ChirpDeleted(uuid.UUID) {}

// Handler exposes the chirp endpoints.
type Handler struct {
	log      *slog.Logger
	svc      *Service
	auth     Authenticator
	notifier Notifier
}

// NewHandler constructs a Handler. A nil notifier discards events.
func NewHandler(log *slog.Logger, svc *Service, auth Authenticator, notifier Notifier) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if svc == nil {
		return nil, errors.New("chirps: nil service")
	}
	if auth == nil {
		return nil, errors.New("chirps: nil authenticator")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Handler{log: log, svc: svc, auth: auth, notifier: notifier}, nil
}

// Register wires the routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chirps", h.handleCreate)
	mux.HandleFunc("GET /api/chirps", h.handleList)
	mux.HandleFunc("GET /api/chirps/{chirpID}", h.handleGet)
	mux.HandleFunc("DELETE /api/chirps/{chirpID}", h.handleDelete)
}

type createRequest struct {
	Body string `json:"body"`
}

type chirpResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Body      string    `json:"body"`
	UserID    uuid.UUID `json:"userId"`
}

func toChirpResponse(c Chirp) chirpResponse {
	return chirpResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		UserID:    c.UserID,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.auth.Authenticate(r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), userID, req.Body)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.notifier.ChirpCreated(c)

	h.writeJSON(w, http.StatusCreated, toChirpResponse(c))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var f ListFilter

	if raw := r.URL.Query().Get("authorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid authorId")
			return
		}
		f.AuthorID = &id
	}
	switch r.URL.Query().Get("sort") {
	case "", "asc":
		f.Sort = SortAsc
	case "desc":
		f.Sort = SortDesc
	default:
		h.writeError(w, http.StatusBadRequest, "invalid sort order")
		return
	}

	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	out := make([]chirpResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toChirpResponse(c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("chirpID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid chirp id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toChirpResponse(c))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := h.auth.Authenticate(r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("chirpID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid chirp id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.notifier.ChirpDeleted(id)

	w.WriteHeader(http.StatusNoContent)
}

const maxBodyBytes = 1 << 20

// decodeJSON reads one JSON value from a size-capped body. The cap keeps a
// multi-megabyte body from streaming into memory before the length check
// on the chirp itself ever runs.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Reject trailing data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after JSON object")
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, token.ErrMalformedAuthHeader):
		h.writeError(w, http.StatusBadRequest, "malformed authorization header")
	case errors.Is(err, ErrEmptyBody):
		h.writeError(w, http.StatusBadRequest, "chirp body is empty")
	case errors.Is(err, ErrTooLong):
		h.writeError(w, http.StatusBadRequest, "chirp is too long")
	case errors.Is(err, session.ErrUnauthorized), errors.Is(err, token.ErrInvalidToken):
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "not the chirp author")
	case errors.Is(err, ErrNotFound):
		h.writeError(w, http.StatusNotFound, "chirp not found")
	default:
		h.log.Error("chirps.request.fail", "err", err)
		h.writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
