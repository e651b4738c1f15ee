// Package logging builds the slog loggers used by the backends.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel parses a level name. Unknown names fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a level ParseLevel understands.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Options configures New.
type Options struct {
	Level slog.Level
	// Color enables ANSI colors. Browser consoles do not render them.
	Color bool
	// Component, when set, is attached to every record.
	Component string
}

// New creates a logger writing tint-formatted records to w.
func New(w io.Writer, opts Options) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		NoColor:    !opts.Color,
		TimeFormat: "15:04:05.000",
	})
	l := slog.New(h)
	if opts.Component != "" {
		l = l.With("component", opts.Component)
	}
	return l
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
