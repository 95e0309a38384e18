package app

import (
	"net/http"
)

func (a *App) registerHTTP(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	a.auth.Register(mux)
	a.chirpAPI.Register(mux)

	// Registered after the chirp routes; the literal path wins over the
	// {chirpID} wildcard in ServeMux precedence.
	mux.Handle("GET /api/chirps/feed", a.feedGw)

	fileserver := http.StripPrefix("/app", http.FileServer(http.Dir(a.cfg.AssetsDir)))
	mux.Handle("/app/", WithHitCounting(fileserver, a.metrics))

	mux.HandleFunc("GET /admin/metrics", a.metrics.ServeAdminPage)
	mux.Handle("GET /metrics", a.metrics.PromHandler())
	mux.HandleFunc("POST /admin/reset", a.handleReset)
}

// handleReset wipes all state. Only available on the dev platform; a
// production deployment answers 403 no matter who asks.
func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	if a.cfg.Platform != "dev" {
		http.Error(w, "reset is only allowed on the dev platform", http.StatusForbidden)
		return
	}

	ctx := r.Context()

	// Users first: in Postgres mode the chirp and refresh-token rows go
	// with them via ON DELETE CASCADE. The extra wipes cover memory mode.
	if err := a.st.users.DeleteAll(ctx); err != nil {
		a.log.Error("admin.reset.fail", "err", err)
		http.Error(w, "reset failed", http.StatusInternalServerError)
		return
	}
	if err := a.st.tokens.DeleteAll(ctx); err != nil {
		a.log.Error("admin.reset.fail", "err", err)
		http.Error(w, "reset failed", http.StatusInternalServerError)
		return
	}
	if err := a.st.chirps.DeleteAll(ctx); err != nil {
		a.log.Error("admin.reset.fail", "err", err)
		http.Error(w, "reset failed", http.StatusInternalServerError)
		return
	}
	a.metrics.Reset()

	a.log.Info("admin.reset.done")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
