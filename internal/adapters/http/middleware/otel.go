package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
)

// OpenTelemetry returns middleware that creates a server span for each
// request and records server request metrics. W3C Trace Context is
// extracted from the incoming headers, so a command submitted by another
// service joins that service's trace.
//
// The span is renamed after routing to "HTTP <method> <route>" and carries
// the comment id for comment routes. A panic marks the span as failed and
// is re-raised for Recovery. A nil metrics skips metric recording.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.GetTracerProvider().Tracer("middleware").Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
				),
			)
			defer span.End()
			defer func() {
				if v := recover(); v != nil {
					span.RecordError(fmt.Errorf("panic: %v", v))
					span.SetStatus(codes.Error, "panic")
					panic(v)
				}
			}()

			rw := newResponseWriter(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rw, r)

			route := routeOf(r)
			if route != "" {
				span.SetName("HTTP " + r.Method + " " + route)
				span.SetAttributes(telemetry.AttrHTTPRoute.String(route))
			} else {
				span.SetName("HTTP " + r.Method + " " + r.URL.Path)
				route = unmatchedRoute
			}
			if id := commentIDOf(r); id != "" {
				span.SetAttributes(telemetry.AttrCommentID.String(id))
			}

			status := rw.statusCode
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			metrics.RecordServerRequest(ctx, r.Method, route, status, time.Since(start))
		})
	}
}
