package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// newLogger builds the application logger. A log file receives JSON records in
// every mode. Without one, print mode logs to stderr with tint and the TUI
// discards logs so the alternate screen is never overwritten.
func newLogger(level slog.Level, logFile io.Writer, stderr io.Writer, color, tui bool) *slog.Logger {
	switch {
	case logFile != nil:
		return slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}))
	case tui:
		return slog.New(slog.DiscardHandler)
	default:
		return slog.New(tint.NewHandler(stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !color,
		}))
	}
}

// openLogFile opens path for appending. An empty path yields no file.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
