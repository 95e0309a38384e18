package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all runtime configuration loaded from environment
// variables. It is built once at startup and passed by value.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes    int           `env:"HTTP_MAX_HEADER_BYTES" envDefault:"1048576"`

	// DatabaseURL empty means in-memory stores (dev mode).
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"0"`

	// JWTSecret signs access tokens. Required.
	JWTSecret string `env:"SECRET"`

	// Platform gates destructive admin endpoints; /admin/reset only works
	// when it is "dev".
	Platform string `env:"PLATFORM" envDefault:""`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"1440h"`

	// AssetsDir is served under /app/ with the visit counter.
	AssetsDir string `env:"ASSETS_DIR" envDefault:"."`

	// FeedOrigins authorizes cross-origin websocket upgrades for the live
	// chirp feed. Empty means same-host only.
	FeedOrigins []string `env:"FEED_ORIGINS"`
}

// LoadConfig loads Config from CHIRPY_-prefixed environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "CHIRPY_"}); err != nil {
		return Config{}, fmt.Errorf("app config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("app config: CHIRPY_SECRET is required")
	}
	return cfg, nil
}
