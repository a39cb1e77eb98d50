// ABOUTME: Leveled logging facade for all notifyd components.
// ABOUTME: Printf-style Debug/Info/Warn/Error backed by slog with optional rotating file output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation parameters, in lumberjack semantics.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config describes the logging destination and verbosity.
type Config struct {
	Level      string // debug, info, warn, error (default info)
	File       string // rotating log file path (empty = stderr only)
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	closer io.Closer
)

// Init configures the process-wide logger. Safe to call more than once;
// the previous file writer is closed on reconfiguration.
func Init(cfg Config) error {
	level := parseLevel(cfg.Level)

	var w io.Writer = os.Stderr
	var c io.Closer
	if cfg.File != "" {
		rotating := &lj.Logger{
			Filename:   cfg.File,
			MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
		}
		w = io.MultiWriter(os.Stderr, rotating)
		c = rotating
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = c
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

// Close flushes and closes the file writer, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func parseLevel(s string) slog.Level {
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

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug-level message.
func Debug(format string, args ...any) {
	current().Debug(fmt.Sprintf(format, args...))
}

// Info logs an info-level message.
func Info(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning-level message.
func Warn(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}

// Error logs an error-level message.
func Error(format string, args ...any) {
	current().Error(fmt.Sprintf(format, args...))
}
