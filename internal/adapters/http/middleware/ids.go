package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"

	// maxIDLength bounds caller-supplied IDs. Correlation IDs are stored on
	// every event a request records.
	maxIDLength = 128
)

// RequestID returns middleware that reuses a well-formed X-Request-ID header
// or generates a new UUID. The ID is stored with reqctx.WithRequestID, where
// the outbound HTTP client picks it up, and echoed in the response.
func RequestID() func(http.Handler) http.Handler {
	return propagateID(headerRequestID, reqctx.WithRequestID, func(context.Context) string {
		return reqctx.NewID()
	})
}

// CorrelationID returns middleware that reuses a well-formed
// X-Correlation-ID header or falls back to the request ID, so it must run
// after RequestID. The command handler stamps the ID onto recorded events.
func CorrelationID() func(http.Handler) http.Handler {
	return propagateID(headerCorrelationID, reqctx.WithCorrelationID, reqctx.RequestID)
}

func propagateID(
	header string,
	store func(context.Context, string) context.Context,
	fallback func(context.Context) string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if !validID(id) {
				id = fallback(r.Context())
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(store(r.Context(), id)))
		})
	}
}

// validID accepts non-empty visible ASCII up to maxIDLength.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
