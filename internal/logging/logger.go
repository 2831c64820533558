// Package logging provides the application's structured logger setup.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the standard application logger. It writes text to stderr
// (keeping stdout free for flow output) and rewrites the "error" key to
// "err".
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewJSON creates a JSON logger for server deployments.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func normalizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
