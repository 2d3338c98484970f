package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
)

// Logging returns middleware that logs request start and completion. The
// request and correlation ids are attached to a child logger that is stored
// in the context for the handlers, the comment service and any reactor call
// made inline.
//
// Completion is logged at WARN for 5xx responses and INFO otherwise, with
// the matched route and, for comment routes, the comment id. Request
// headers are logged at DEBUG with credentials redacted.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			child := logger.With(
				slog.String("request_id", reqctx.RequestID(r.Context())),
				slog.String("correlation_id", reqctx.CorrelationID(r.Context())),
			)
			ctx := logging.WithLogger(r.Context(), child)
			r = r.WithContext(ctx)

			child.LogAttrs(ctx, slog.LevelInfo, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if child.Enabled(ctx, slog.LevelDebug) {
				child.LogAttrs(ctx, slog.LevelDebug, "request headers",
					slog.GroupAttrs("headers", logging.RedactHeaders(r.Header)...),
				)
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			level := slog.LevelInfo
			if rw.statusCode >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			child.LogAttrs(ctx, level, "request completed", completionAttrs(r, rw, time.Since(start))...)
		})
	}
}

func completionAttrs(r *http.Request, rw *responseWriter, elapsed time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", rw.statusCode),
		slog.Int64("bytes", rw.written),
		slog.Duration("duration", elapsed),
	}
	if route := routeOf(r); route != "" {
		attrs = append(attrs, slog.String("route", route))
	}
	if id := commentIDOf(r); id != "" {
		attrs = append(attrs, slog.String("comment_id", id))
	}
	return attrs
}
