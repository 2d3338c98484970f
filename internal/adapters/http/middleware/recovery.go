package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
)

// Recovery returns middleware that turns a handler panic into an RFC 9457
// 500 response with the panic logged alongside its stack trace. The panic
// value never reaches the client. A handler
// that already wrote its headers keeps its status; only the log entry is
// emitted. http.ErrAbortHandler is re-raised for net/http to handle.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if !rw.headerWritten {
					dto.WriteProblem(rw, r, dto.NewProblem(r, http.StatusInternalServerError, ""))
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
