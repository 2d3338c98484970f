package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
	"github.com/jsamuelsen11/review-comments/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

// blockUntilDeadline is a handler that never answers in time.
func blockUntilDeadline(_ http.ResponseWriter, r *http.Request) {
	<-r.Context().Done()
}

func TestTimeout_PassesCompletedResponse(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); !ok {
			t.Error("handler context has no deadline")
		}
		w.Header().Set("Location", "/api/v1/comments/abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comments", http.NoBody))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/api/v1/comments/abc" {
		t.Errorf("Location = %q, want the handler's header", got)
	}
	if rec.Body.String() != `{"id":"abc"}` {
		t.Errorf("body = %q, want the handler's body", rec.Body.String())
	}
}

func TestTimeout_ImplicitStatusIsOK(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/comments/abc", http.NoBody))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("response = %d %q, want 200 %q", rec.Code, rec.Body.String(), "ok")
	}
}

func TestTimeout_AnswersGatewayTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method       string
		wantRecorded bool
	}{
		{method: http.MethodGet, wantRecorded: false},
		{method: http.MethodPut, wantRecorded: true},
		{method: http.MethodPost, wantRecorded: true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			ctx := logging.WithLogger(t.Context(), slog.New(slog.NewTextHandler(&logs, nil)))
			req := httptest.NewRequestWithContext(ctx, tt.method, "/api/v1/comments/abc/body", http.NoBody)

			rec := httptest.NewRecorder()
			middleware.Timeout(30*time.Millisecond)(http.HandlerFunc(blockUntilDeadline)).ServeHTTP(rec, req)

			if rec.Code != http.StatusGatewayTimeout {
				t.Fatalf("status = %d, want 504", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var problem dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("decoding problem: %v", err)
			}
			if got := strings.Contains(problem.Detail, "may still have been recorded"); got != tt.wantRecorded {
				t.Errorf("detail = %q, recorded warning = %v, want %v", problem.Detail, got, tt.wantRecorded)
			}
			if !strings.Contains(logs.String(), "request timed out") {
				t.Errorf("timeout not logged: %s", logs.String())
			}
		})
	}
}

func TestTimeout_DiscardsLateWrites(t *testing.T) {
	t.Parallel()

	writeErr := make(chan error, 1)
	handler := middleware.Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(20 * time.Millisecond)
		_, err := w.Write([]byte("late"))
		writeErr <- err
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/comments/abc/persona", http.NoBody))

	if err := <-writeErr; !errors.Is(err, http.ErrHandlerTimeout) {
		t.Errorf("late Write() error = %v, want http.ErrHandlerTimeout", err)
	}
	if strings.Contains(rec.Body.String(), "late") {
		t.Errorf("body = %q, want the late write discarded", rec.Body.String())
	}
}

func TestTimeout_ReraisesPanicForRecovery(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger())(
		middleware.Timeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("decide blew up")
		})),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comments/abc/publication", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 from Recovery", rec.Code)
	}
}

func TestTimeout_DisabledWhenNotPositive(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			t.Error("context has a deadline, want none when disabled")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
