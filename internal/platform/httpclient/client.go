// Package httpclient is the outbound HTTP client every ACL adapter talks to
// its downstream service through.
//
// One call to Do passes these stages, outermost first:
//
//	circuit breaker → rate limiter → headers → client span → retries → transport
//
// Typical use:
//
//	client := httpclient.New(&cfg.Clients.Deposition, "deposition-api", metrics, logger)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, client.BaseURL()+"/deposit/depositions", body)
//	resp, err := client.Do(ctx, req)
//
// The request and correlation ids stored with reqctx travel as X-Request-ID
// and X-Correlation-ID, and a configured API token as a bearer token.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/review-comments/internal/platform/config"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
)

// Client calls one downstream service.
type Client struct {
	serviceName string
	baseURL     string
	apiToken    string

	transport *http.Client
	breaker   *gobreaker.CircuitBreaker[struct{}]
	limiter   *rate.Limiter
	retryCfg  retryConfig

	metrics *telemetry.Metrics
}

// New returns a client for the downstream named serviceName, the name used
// in logs, spans, metrics and health checks. metrics may be nil. A zero
// requests-per-second disables rate limiting.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		serviceName: serviceName,
		baseURL:     cfg.BaseURL,
		apiToken:    cfg.APIToken,
		transport:   &http.Client{Timeout: cfg.Timeout},
		breaker:     newBreaker(serviceName, cfg.CircuitBreaker, logger),
		retryCfg:    retryPolicy(cfg.Retry),
		metrics:     metrics,
	}
	if rps := cfg.RateLimit.RequestsPerSecond; rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), cfg.RateLimit.BurstSize)
	}
	return c
}

// Do sends req.
//
// A final response with a non-retryable status comes back with a nil error.
// When retries run out on a retryable status, the last response comes back
// together with the error. In both cases the caller closes the body. The
// response is nil when the breaker refuses the call, the rate limiter gives
// up or the transport fails.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.call(ctx, req, &resp)
	})

	c.recordMetrics(ctx, req.Method, start, resp, err)
	return resp, err
}

// call is one breaker-guarded call: wait for the limiter, then retry the
// request under a client span.
func (c *Client) call(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s rate limit: %w", c.serviceName, err)
		}
	}

	c.setHeaders(ctx, req.Header)

	ctx, span := c.startSpan(ctx, req)
	defer span.End()

	err := c.doWithRetry(ctx, req.WithContext(ctx), resp)
	if *resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", (*resp).StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) setHeaders(ctx context.Context, h http.Header) {
	if id := reqctx.RequestID(ctx); id != "" {
		h.Set("X-Request-ID", id)
	}
	if id := reqctx.CorrelationID(ctx); id != "" {
		h.Set("X-Correlation-ID", id)
	}
	if c.apiToken != "" && h.Get("Authorization") == "" {
		h.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// startSpan opens the client span and writes its W3C trace context into the
// request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.GetTracerProvider().Tracer("httpclient").Start(ctx,
		"HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			telemetry.AttrPeerService.String(c.serviceName),
		),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

// recordMetrics runs outside the circuit breaker so that refused calls are
// counted too.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	status := 0
	result := telemetry.ResultError
	if resp != nil {
		status = resp.StatusCode
		if status < http.StatusBadRequest {
			result = telemetry.ResultSuccess
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = telemetry.ResultCircuitOpen
	}
	c.metrics.RecordClientRequest(ctx, c.serviceName, method, status, result, time.Since(start))
}

// BaseURL is the downstream root request paths are appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name is the downstream service name, such as "deposition-api".
func (c *Client) Name() string {
	return c.serviceName
}

// CircuitBreakerState is "closed", "half-open" or "open". The ACL adapters
// report it as their health.
func (c *Client) CircuitBreakerState() string {
	return c.breaker.State().String()
}
