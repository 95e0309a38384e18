package app

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a JSON structured logger with an explicit log level
// and installs it as the process default.
func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})

	log := slog.New(h)
	slog.SetDefault(log)
	return log
}
