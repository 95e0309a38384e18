// Package app wires the Chirpy server runtime: config, logging, storage,
// HTTP routes, metrics and the live chirp feed.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chirpy/cmd/identity"
	authapi "chirpy/cmd/internal/auth/api"
	"chirpy/cmd/internal/auth/session"
	"chirpy/cmd/internal/chirps"
	"chirpy/cmd/internal/feed"
	"chirpy/cmd/security/password"
)

// stores groups the persistence backends. With a DATABASE_URL they are
// Postgres-backed; without one the app runs on in-memory stores for dev.
type stores struct {
	users  identity.Store
	tokens session.Store
	chirps chirps.Store

	pool *pgxpool.Pool
}

func (s stores) close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// App is the Chirpy server runtime.
type App struct {
	cfg Config
	log *slog.Logger

	st      stores
	metrics *Metrics

	auth      *authapi.Handler
	chirpAPI  *chirps.Handler
	feedHub   *feed.Hub
	feedGw    *feed.Gateway
	dbEnabled bool
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	st, dbEnabled, err := newStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	hasher, err := password.FromEnv()
	if err != nil {
		st.close()
		return nil, err
	}

	sessions, err := session.NewService(st.users, st.tokens, hasher, session.Config{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}, nil)
	if err != nil {
		st.close()
		return nil, err
	}

	auth, err := authapi.NewHandler(log, st.users, sessions, hasher, nil)
	if err != nil {
		st.close()
		return nil, err
	}

	chirpSvc, err := chirps.NewService(st.chirps, nil)
	if err != nil {
		st.close()
		return nil, err
	}

	hub := feed.NewHub(log)
	chirpAPI, err := chirps.NewHandler(log, chirpSvc, auth, feed.NewNotifier(hub))
	if err != nil {
		st.close()
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		st:        st,
		metrics:   NewMetrics(),
		auth:      auth,
		chirpAPI:  chirpAPI,
		feedHub:   hub,
		feedGw:    feed.NewGateway(log, hub, cfg.FeedOrigins),
		dbEnabled: dbEnabled,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	a.registerHTTP(mux)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(mux, a.log),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
		IdleTimeout:       a.cfg.IdleTimeout,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled, "platform", a.cfg.Platform)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.st.close()
	a.log.Info("server.stopped")
	return nil
}

// newStores decides between Postgres-backed persistence and in-memory dev
// stores, and runs migrations in the Postgres case.
func newStores(ctx context.Context, cfg Config, log *slog.Logger) (stores, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return stores{
			users:  identity.NewMemoryStore(),
			tokens: session.NewMemoryStore(),
			chirps: chirps.NewMemoryStore(),
		}, false, nil
	}

	if err := Migrate(ctx, cfg.DatabaseURL); err != nil {
		return stores{}, false, err
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return stores{}, false, err
	}

	users, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}
	tokens, err := session.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}
	chirpStore, err := chirps.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}

	log.Info("db.enabled.postgres_store")
	return stores{
		users:  users,
		tokens: tokens,
		chirps: chirpStore,
		pool:   pool,
	}, true, nil
}
