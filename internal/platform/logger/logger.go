// Package logger provides structured logging functionality for the
// application.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds the options for setting up the application logger.
type LoggerConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	Level string

	// JSON selects the JSON handler; when false a human-readable text
	// handler is used instead, which is nicer for local development.
	JSON bool
}

// Setup initializes the application's logging system from the provided
// configuration. It creates a structured logger writing to stdout at the
// configured level, sets it as the process default, and returns it.
//
// An unknown level falls back to info with a warning rather than failing
// startup.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			slog.String("configured_level", cfg.Level),
			slog.String("default_level", "info"))
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log, nil
}

// parseLevel converts a textual level name to a slog.Level
// (case-insensitive).
func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// loggerContextKey is the private context key for the request-scoped logger.
type loggerContextKey struct{}

// WithLogger returns a context carrying the given logger, typically one
// annotated with request-scoped attributes such as the trace ID.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the request-scoped logger from the context, falling
// back to the process default when none was attached. It never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault is like FromContext but falls back to the given
// logger instead of the process default. Components pass their own
// component-scoped logger as the fallback.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
