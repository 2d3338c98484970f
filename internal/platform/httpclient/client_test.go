package httpclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/review-comments/internal/platform/config"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
)

const depositions = "/api/deposit/depositions"

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       1 * time.Second,
			HalfOpenLimit: 1,
		},
	}
}

// depositionAPI starts a fake downstream and a client pointed at it. tweak,
// when non-nil, adjusts the client config before construction.
func depositionAPI(t *testing.T, h http.HandlerFunc, tweak func(*config.ClientConfig)) (*httptest.Server, *httpclient.Client) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	if tweak != nil {
		tweak(cfg)
	}
	return srv, httpclient.New(cfg, "deposition-api", nil, slog.New(slog.DiscardHandler))
}

// send issues one request through the client. A nil body sends none.
func send(ctx context.Context, t *testing.T, c *httpclient.Client, method, path string, body io.Reader) (*http.Response, error) {
	t.Helper()

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, body)
	if err != nil {
		t.Fatalf("building %s %s: %v", method, path, err)
	}
	return c.Do(ctx, req)
}

func closeBody(resp *http.Response) {
	if resp != nil {
		_ = resp.Body.Close()
	}
}

// tripBreaker sends one failing request against a breaker that opens after a
// single failure.
func tripBreaker(t *testing.T, c *httpclient.Client) {
	t.Helper()

	resp, _ := send(context.Background(), t, c, http.MethodGet, depositions, nil)
	closeBody(resp)
	if got := c.CircuitBreakerState(); got != "open" {
		t.Fatalf("breaker state after failure = %q, want %q", got, "open")
	}
}

func singleShot(cfg *config.ClientConfig) {
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 100 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
}

func TestDo_CreatesDeposition(t *testing.T) {
	t.Parallel()

	_, client := depositionAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != depositions {
			t.Errorf("request = %s %s, want POST %s", r.Method, r.URL.Path, depositions)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":42}`)
	}, nil)

	resp, err := send(context.Background(), t, client, http.MethodPost, depositions, strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer closeBody(resp)

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated || string(body) != `{"id":42}` {
		t.Errorf("response = %d %s, want 201 {\"id\":42}", resp.StatusCode, body)
	}
}

func TestDo_RetriesTransientStatuses(t *testing.T) {
	t.Parallel()

	for _, status := range []int{
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) < 3 {
					w.WriteHeader(status)
					return
				}
				w.WriteHeader(http.StatusOK)
			}, nil)

			resp, err := send(context.Background(), t, client, http.MethodGet, depositions+"/42", nil)
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			defer closeBody(resp)

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
			if got := calls.Load(); got != 3 {
				t.Errorf("attempts = %d, want 3", got)
			}
		})
	}
}

func TestDo_ClientErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, nil)

	resp, err := send(context.Background(), t, client, http.MethodPost, depositions, strings.NewReader(`{"metadata":{}}`))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestDo_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	}, nil)

	resp, err := send(context.Background(), t, client, http.MethodGet, depositions, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want error after the last attempt")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	if resp == nil {
		t.Fatal("resp = nil, want the last response")
	}
	defer closeBody(resp)

	if body, _ := io.ReadAll(resp.Body); string(body) != "maintenance" {
		t.Errorf("body = %q, want %q", body, "maintenance")
	}
}

func TestDo_HonorsRetryAfter(t *testing.T) {
	t.Parallel()

	var (
		calls atomic.Int32
		mu    sync.Mutex
		seen  []time.Time
	)
	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		seen = append(seen, time.Now())
		mu.Unlock()

		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, nil)

	resp, err := send(context.Background(), t, client, http.MethodPost, depositions+"/42/actions/publish", nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer closeBody(resp)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("attempts = %d, want 2", len(seen))
	}
	// Exponential backoff alone would retry after about 10ms.
	if gap := seen[1].Sub(seen[0]); gap < 900*time.Millisecond {
		t.Errorf("retry came after %v, want at least the 1s Retry-After", gap)
	}
}

func TestDo_ReplaysBodyOnEachAttempt(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	_, client := depositionAPI(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}, nil)

	const payload = `{"metadata":{"title":"Review of 10.1101/2024.01.01.123456"}}`
	resp, err := send(context.Background(), t, client, http.MethodPost, depositions, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer closeBody(resp)

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("attempts = %d, want 2", len(bodies))
	}
	for i, b := range bodies {
		if b != payload {
			t.Errorf("attempt %d body = %q, want %q", i+1, b, payload)
		}
	}
}

func TestDo_InjectsHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      func() context.Context
		token    string
		wantReq  string
		wantCorr string
		wantAuth string
	}{
		{
			name: "ids and token",
			ctx: func() context.Context {
				ctx := reqctx.WithRequestID(context.Background(), "req-123")
				return reqctx.WithCorrelationID(ctx, "corr-456")
			},
			token:    "deposit-token",
			wantReq:  "req-123",
			wantCorr: "corr-456",
			wantAuth: "Bearer deposit-token",
		},
		{
			name: "nothing to inject",
			ctx:  context.Background,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got http.Header
			_, client := depositionAPI(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.WriteHeader(http.StatusOK)
			}, func(cfg *config.ClientConfig) {
				cfg.APIToken = tt.token
			})

			ctx := tt.ctx()
			resp, err := send(ctx, t, client, http.MethodGet, depositions, nil)
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			closeBody(resp)

			if v := got.Get("X-Request-ID"); v != tt.wantReq {
				t.Errorf("X-Request-ID = %q, want %q", v, tt.wantReq)
			}
			if v := got.Get("X-Correlation-ID"); v != tt.wantCorr {
				t.Errorf("X-Correlation-ID = %q, want %q", v, tt.wantCorr)
			}
			if v := got.Get("Authorization"); v != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", v, tt.wantAuth)
			}
		})
	}
}

func TestDo_KeepsCallerAuthorization(t *testing.T) {
	t.Parallel()

	var gotAuth string
	_, client := depositionAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, func(cfg *config.ClientConfig) {
		cfg.APIToken = "configured"
	})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, client.BaseURL()+depositions, http.NoBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer per-request")

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	closeBody(resp)

	if gotAuth != "Bearer per-request" {
		t.Errorf("Authorization = %q, want the caller's header", gotAuth)
	}
}

func TestDo_OpenBreakerShortCircuits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, singleShot)

	tripBreaker(t, client)
	before := calls.Load()

	resp, err := send(context.Background(), t, client, http.MethodGet, depositions, nil)
	closeBody(resp)

	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want gobreaker.ErrOpenState", err)
	}
	if calls.Load() != before {
		t.Error("downstream was called while the breaker was open")
	}
}

func TestDo_BreakerRecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)

	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, singleShot)

	tripBreaker(t, client)

	time.Sleep(150 * time.Millisecond)
	if got := client.CircuitBreakerState(); got != "half-open" {
		t.Fatalf("breaker state after timeout = %q, want %q", got, "half-open")
	}
	failing.Store(false)

	resp, err := send(context.Background(), t, client, http.MethodGet, depositions, nil)
	if err != nil {
		t.Fatalf("Do() error = %v, want the probe to succeed", err)
	}
	closeBody(resp)

	if got := client.CircuitBreakerState(); got != "closed" {
		t.Errorf("breaker state after probe = %q, want %q", got, "closed")
	}
}

func TestDo_CanceledContext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := send(ctx, t, client, http.MethodGet, depositions, nil)
	closeBody(resp)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("downstream calls = %d, want 0", got)
	}
}

func TestDo_RateLimited(t *testing.T) {
	t.Parallel()

	_, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, func(cfg *config.ClientConfig) {
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.BurstSize = 1
	})

	resp, err := send(context.Background(), t, client, http.MethodGet, depositions, nil)
	if err != nil {
		t.Fatalf("first Do() error = %v", err)
	}
	closeBody(resp)

	// The bucket is empty, so the next request waits longer than this deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err = send(ctx, t, client, http.MethodGet, depositions, nil)
	closeBody(resp)
	if err == nil {
		t.Fatal("second Do() error = nil, want rate limiter error")
	}
}

func TestClient_Accessors(t *testing.T) {
	t.Parallel()

	srv, client := depositionAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	if got := client.Name(); got != "deposition-api" {
		t.Errorf("Name() = %q, want %q", got, "deposition-api")
	}
	if got := client.BaseURL(); got != srv.URL {
		t.Errorf("BaseURL() = %q, want %q", got, srv.URL)
	}
	if got := client.CircuitBreakerState(); got != "closed" {
		t.Errorf("CircuitBreakerState() = %q, want %q", got, "closed")
	}
}
