package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
)

// maxResponseSize bounds decoded success bodies.
const maxResponseSize = 4 << 20

// Requester sends JSON requests for the ACL clients and turns every outcome
// into either a decoded value or a domain error.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester returns a Requester over client. A nil logger discards.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{client: client, logger: logger}
}

// Do sends method to path below the base URL. A non-nil in is sent as JSON;
// a non-nil out receives the JSON body of a 2xx response. Error statuses go
// through TranslateHTTPError and a request that never got a response wraps
// domain.ErrUnavailable.
func (r *Requester) Do(ctx context.Context, method, path string, in, out any) error {
	req, err := r.build(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.close(ctx, resp)
	}

	switch {
	case resp != nil && !successful(resp.StatusCode):
		// Exhausted retries return the last response together with err.
		r.logger.WarnContext(ctx, "downstream refused request",
			slog.String("peer", r.client.Name()),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return TranslateHTTPError(resp)

	case err != nil:
		r.logger.ErrorContext(ctx, "downstream unreachable",
			slog.String("peer", r.client.Name()),
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrUnavailable, err)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (r *Requester) build(ctx context.Context, method, path string, in any) (*http.Request, error) {
	body := io.Reader(http.NoBody)
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (r *Requester) close(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}

func successful(status int) bool {
	return status >= 200 && status < 300
}

// Name is the downstream service name, used as the health check key.
func (r *Requester) Name() string {
	return r.client.Name()
}

// CircuitBreakerState is the breaker state of the underlying client.
func (r *Requester) CircuitBreakerState() string {
	return r.client.CircuitBreakerState()
}
