// Package logging builds the structured diagnostics logger.
//
// Diagnostics are separate from user-facing messages, which go through
// internal/cli/output.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. It logs warnings and errors, plus
// debug and info records when debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger if l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}

	return l
}
