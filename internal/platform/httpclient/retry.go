package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jsamuelsen11/review-comments/internal/platform/config"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

const (
	// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
	jitterFraction = 0.25

	// maxRetryAfter caps how long a Retry-After header can hold a retry.
	maxRetryAfter = time.Minute
)

// retryConfig is the retry policy of one client.
type retryConfig struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

func retryPolicy(cfg config.RetryConfig) retryConfig {
	return retryConfig{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		multiplier:      cfg.Multiplier,
	}
}

// retryHint carries a server-requested delay into the next backoff step.
type retryHint struct {
	wait time.Duration
}

// hintedBackOff waits at least as long as the last Retry-After hint. The
// hint is consumed by one step.
type hintedBackOff struct {
	backoff.BackOff
	hint *retryHint
}

func (b hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.hint.wait > next {
		next = b.hint.wait
	}
	b.hint.wait = 0
	return next
}

// newBackOff returns the exponential policy for one request. The first
// attempt is not a retry, so maxAttempts-1 retries are allowed. A non-nil
// hint lets the server stretch individual waits.
func (rc retryConfig) newBackOff(ctx context.Context, hint *retryHint) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = rc.initialInterval
	if rc.maxInterval > 0 {
		exp.MaxInterval = rc.maxInterval
	}
	exp.Multiplier = rc.multiplier
	exp.RandomizationFactor = jitterFraction
	exp.MaxElapsedTime = 0
	exp.Reset()

	var policy backoff.BackOff = exp
	if hint != nil {
		policy = hintedBackOff{BackOff: exp, hint: hint}
	}

	retries := max(rc.maxAttempts-1, 0)
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
}

// doWithRetry sends req, retrying network errors and retryable statuses with
// exponential backoff. A Retry-After header on a retryable response sets a
// floor on the next wait. Request bodies are buffered so every attempt sends
// the same payload. The final response is written to resp and its body is
// left for the caller to close.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}

	payload, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	hint := &retryHint{}
	attempt := 0
	operation := func() error {
		attempt++
		resetRequestBody(req, payload)

		r, err := c.transport.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}

		if !isRetryableStatus(r.StatusCode) {
			*resp = r
			return nil
		}

		statusErr := fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)

		// The last attempt hands the response back with its body intact.
		if attempt >= c.retryCfg.maxAttempts {
			*resp = r
			return backoff.Permanent(statusErr)
		}

		if wait, ok := parseRetryAfter(r.Header.Get("Retry-After"), time.Now()); ok {
			hint.wait = wait
		}
		drainResponseBody(r)
		return statusErr
	}

	notify := func(err error, delay time.Duration) {
		logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
			slog.String("operation", "httpclient.Do"),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("peer_service", c.serviceName),
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", c.retryCfg.maxAttempts),
			slog.Duration("backoff", delay),
			slog.Any("error", err),
		)
	}

	return backoff.RetryNotify(operation, c.retryCfg.newBackOff(ctx, hint), notify)
}

// parseRetryAfter reads a Retry-After value given in seconds or as an HTTP
// date. Waits are capped at maxRetryAfter; past dates and garbage are ignored.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	var wait time.Duration
	if secs, err := strconv.Atoi(value); err == nil {
		wait = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(value); err == nil {
		wait = at.Sub(now)
	} else {
		return 0, false
	}

	if wait <= 0 {
		return 0, false
	}
	return min(wait, maxRetryAfter), true
}

// bufferRequestBody reads and closes the request body so it can be replayed.
// A missing body yields nil.
func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()

	return payload, nil
}

func resetRequestBody(req *http.Request, payload []byte) {
	if payload == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(payload))
	req.ContentLength = int64(len(payload))
}

// drainResponseBody discards the body so the connection can be reused.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error is worth another attempt.
// Everything is, except the caller giving up.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether a status is transient: 429 and 5xx.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
