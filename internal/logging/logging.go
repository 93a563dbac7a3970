// Package logging builds the application logger. The terminal belongs to the
// full-screen UI, so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "pomotui"

// New returns a logger writing to w at the given level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, nil
}

// Open creates the parent directory of path and returns a logger appending
// to it. The returned closer releases the file.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger, err := New(file, level)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return log.InfoLevel, nil
	}
	switch level {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(level)
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
}
