package http_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	adapthttp "github.com/jsamuelsen11/review-comments/internal/adapters/http"
	"github.com/jsamuelsen11/review-comments/internal/platform/config"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startServer runs s in the background and waits until it is listening.
func startServer(t *testing.T, s *adapthttp.Server) <-chan error {
	t.Helper()

	configured := s.Addr()
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == configured {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return errCh
}

func shutdown(t *testing.T, s *adapthttp.Server, errCh <-chan error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Start() error after shutdown: %v", err)
	}
}

func TestNewServer_NilLogger(t *testing.T) {
	t.Parallel()

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0}
	s := adapthttp.NewServer(cfg, http.NotFoundHandler(), nil)

	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestServer_AddrBeforeStart(t *testing.T) {
	t.Parallel()

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 9090}
	s := adapthttp.NewServer(cfg, http.NotFoundHandler(), discardLogger())

	if got := s.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:9090")
	}
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	cfg := config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	s := adapthttp.NewServer(cfg, handler, discardLogger())
	errCh := startServer(t, s)

	resp, err := http.Get("http://" + s.Addr() + "/health/live")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("response = %d %q, want 200 %q", resp.StatusCode, body, "ok")
	}

	shutdown(t, s, errCh)
}

func TestServer_RequestContextCarriesLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("from handler")
		w.WriteHeader(http.StatusNoContent)
	})

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, handler, logger)
	errCh := startServer(t, s)

	resp, err := http.Get("http://" + s.Addr() + "/")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	_ = resp.Body.Close()

	shutdown(t, s, errCh)

	if !strings.Contains(buf.String(), "from handler") {
		t.Errorf("handler log not written to server logger, got: %s", buf.String())
	}
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	first := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, http.NotFoundHandler(), discardLogger())
	errCh := startServer(t, first)
	defer shutdown(t, first, errCh)

	_, rawPort, _ := strings.Cut(first.Addr(), ":")
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		t.Fatalf("parsing port %q: %v", rawPort, err)
	}

	second := config.ServerConfig{Host: "127.0.0.1", Port: port}
	if err := adapthttp.NewServer(second, http.NotFoundHandler(), discardLogger()).Start(); err == nil {
		t.Fatal("Start() on a bound port returned nil, want error")
	}
}

func TestServer_ShutdownDefaultTimeout(t *testing.T) {
	t.Parallel()

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0}
	s := adapthttp.NewServer(cfg, http.NotFoundHandler(), discardLogger())
	errCh := startServer(t, s)

	// No deadline on the context: the 10s default applies.
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Start() error after shutdown: %v", err)
	}
}
