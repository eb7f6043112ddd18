// Package logger provides structured logging with context extraction and
// optional Sentry integration.
//
// It extends log/slog with two capabilities: automatic injection of
// request-scoped attributes pulled from context (request IDs and the like),
// and error reporting to Sentry with graceful fallback when unconfigured.
//
// Create a logger with context extractors:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// For production error tracking:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	    MinLevel:    slog.LevelWarn,
//	}, extractors...)
//
// If the DSN is empty or Sentry fails to initialize, logging continues to
// stdout only, so the same code path works in development and production.
package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger writing to stdout, with optional
// context extractors applied to every record.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
