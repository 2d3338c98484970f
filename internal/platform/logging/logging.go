// Package logging builds the service's slog logger and carries it through
// contexts. Records pass through masq, so tokens and author e-mail addresses
// are masked however they reach a log call.
//
//	logger := logging.New("info", "json", os.Stderr, slog.String("service", "review-comments"))
//
// Middleware, the event bus and the reactors enrich the context logger:
//
//	ctx = logging.WithLogger(ctx, logger)
//	logger = logging.FromContext(ctx)
//
// Error logging convention for application services and reactors:
//
//	logger.ErrorContext(ctx, "failed to record event",
//	    slog.String("operation", "Handle"),
//	    slog.String("comment_id", id.String()),
//	    slog.Any("error", err),
//	)
//
// Every error log should include the operation name, entity identifiers, and
// the full error chain via slog.Any("error", err). When logging middleware is
// active, the context carries request_id and correlation_id automatically;
// WithAttrs adds further fields for everything downstream of a call.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// contextKey is the unexported key type for storing loggers in context.
type contextKey struct{}

// New builds the service logger. level accepts the slog level names in any
// case, "warning", and offsets such as "info+2"; anything else means info.
// format "text" selects the text handler and everything else JSON. Debug
// output carries source locations. attrs are attached to every record,
// typically the service name so the journal writers can be told apart.
func New(level, format string, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactAttr(),
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context.
// If no logger is stored, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithAttrs derives a child of the context logger enriched with args and
// stores it in the returned context.
func WithAttrs(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}

// ParseLevel reads a level name as slog does ("debug", "INFO", "warn+2")
// and also accepts "warning".
func ParseLevel(level string) (slog.Level, error) {
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}
