// Package reqctx carries request and correlation identifiers through a
// context. Inbound middleware stores them, the outbound HTTP client copies
// them into headers, and the command handler stamps the correlation ID onto
// every recorded event so reactor follow-ups stay correlated with the request
// that started the chain.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// NewID returns a random identifier suitable for request and correlation IDs.
func NewID() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithCorrelationID returns a copy of ctx carrying the correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
