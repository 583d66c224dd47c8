// Package logging builds the application logger. The terminal belongs to the
// UI, so records go to a file and never to stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is a slog.Logger bound to an open log file.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// Open creates path's parent directories and appends JSON records to it.
// If the file cannot be opened the returned Logger discards everything
// along with the error, so callers may keep running.
func Open(path, level string) (*Logger, error) {
	lv := &slog.LevelVar{}
	lv.Set(ParseLevel(level))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard(lv), fmt.Errorf("logging: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard(lv), fmt.Errorf("logging: open: %w", err)
	}
	return &Logger{Logger: newLogger(f, lv), level: lv, file: f}, nil
}

// New writes to w; used by headless callers and tests.
func New(w io.Writer, level string) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(ParseLevel(level))
	return &Logger{Logger: newLogger(w, lv), level: lv}
}

func discard(lv *slog.LevelVar) *Logger {
	return &Logger{Logger: newLogger(io.Discard, lv), level: lv}
}

func newLogger(w io.Writer, lv *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv}))
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a config string to a level; unknown values mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
