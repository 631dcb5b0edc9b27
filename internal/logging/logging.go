// Package logging builds the application's slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/javiermolinar/roster/internal/config"
)

// DebugFile is where --debug writes its log.
const DebugFile = "roster-debug.log"

// New creates a *slog.Logger writing to w.
//
// Format "json" produces JSON records; anything else produces text.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Open returns a logger for cfg. Records go to cfg.File when set and are
// discarded otherwise, since the TUI owns the terminal. With debug set the
// level is forced to debug and records go to DebugFile. The returned close
// function releases the file.
func Open(cfg config.LogConfig, debug bool) (*slog.Logger, func() error, error) {
	if debug {
		cfg.Level = "debug"
		if cfg.File == "" {
			cfg.File = DebugFile
		}
	}
	if cfg.File == "" {
		return Discard(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(cfg, f), f.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
