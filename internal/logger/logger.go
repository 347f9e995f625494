// Package logger builds the structured logger shared by the CLI and stores.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New constructs a JSON slog logger writing to w. level is one of debug,
// info, warn or error; anything else means info.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With("service", "cosmic-whispers")
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
