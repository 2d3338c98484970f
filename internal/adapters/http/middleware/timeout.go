package middleware

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

// Timeout returns middleware that gives each request a deadline. A handler
// still running at the deadline gets an RFC 9457 504 in its place, and its
// later writes are discarded. A non-positive timeout disables the
// middleware.
//
// Handler panics are re-raised on the serving goroutine; one that happens
// after the deadline is dropped with the rest of the late response.
//
// The handler context carries the deadline, so the command handler and
// downstream calls stop with it. A command that was appended just before
// the deadline stays recorded even though the client saw a 504; the detail
// says so for anything other than a read.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{w: w}
			done := make(chan struct{})
			var panicked any

			go func() {
				defer close(done)
				defer func() { panicked = recover() }()
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				// Re-raised here so Recovery, which runs on this goroutine, sees it.
				if panicked != nil {
					panic(panicked)
				}
				tw.finish()
			case <-ctx.Done():
				tw.expire(r, timeout)
			}
		})
	}
}

// timeoutWriter buffers the response so that the timeout path can safely
// write a 504 if the handler hasn't finished. All writes are guarded by a
// mutex shared between the handler goroutine and the timeout select.
type timeoutWriter struct {
	w           http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	buf         []byte
	statusCode  int
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.header == nil {
		tw.header = make(http.Header)
	}
	return tw.header
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.statusCode = http.StatusOK
		tw.wroteHeader = true
	}
	tw.buf = append(tw.buf, b...)
	return len(b), nil
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.wroteHeader {
		return
	}
	tw.statusCode = code
	tw.wroteHeader = true
}

// flush copies the buffered response to the underlying writer. Must be
// called with tw.mu held.
func (tw *timeoutWriter) flush() {
	if tw.header != nil {
		maps.Copy(tw.w.Header(), tw.header)
	}
	if tw.wroteHeader {
		tw.w.WriteHeader(tw.statusCode)
	}
	if len(tw.buf) > 0 {
		_, _ = tw.w.Write(tw.buf)
	}
}

// finish copies the buffered response to the client.
func (tw *timeoutWriter) finish() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.flush()
}

// expire answers 504 and turns later handler writes into errors.
func (tw *timeoutWriter) expire(r *http.Request, timeout time.Duration) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true

	logging.FromContext(r.Context()).WarnContext(r.Context(), "request timed out",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("timeout", timeout),
	)

	detail := "request did not complete in time"
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		detail += "; the command may still have been recorded"
	}
	dto.WriteProblem(tw.w, r, dto.NewProblem(r, http.StatusGatewayTimeout, detail))
}
