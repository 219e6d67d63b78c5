// Package logger sets up the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// New builds a text or JSON logger writing to w. Level "off" returns a
// logger that drops everything.
func New(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	if strings.EqualFold(level, LevelOff) {
		return slog.New(slog.DiscardHandler)
	}

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs New(w, level, jsonFormat) as the default logger.
func Init(w io.Writer, level string, jsonFormat bool) {
	slog.SetDefault(New(w, level, jsonFormat))

	slog.With("component", "logger").Debug("Logger initialized",
		"level", level,
		"json_format", jsonFormat,
	)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
