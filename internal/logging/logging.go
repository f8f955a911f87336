// Package logging sets up the structured log. The TUI owns the terminal,
// so records go to a file under the data directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/mcquiz/internal/docfile"
)

// Open returns a JSON logger appending to path. The returned closer closes
// the file.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := docfile.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(f, level), f, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Err is the attribute used for errors.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
