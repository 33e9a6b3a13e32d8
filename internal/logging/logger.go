// Package logging defines the structured logging interface used by both
// binaries. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware structured logger. Variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "append committed", "path", path, "version", v)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
