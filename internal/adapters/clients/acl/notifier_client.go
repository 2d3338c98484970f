package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/clients/acl/notifier"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.PublicationNotifier = (*NotifierClient)(nil)
	_ ports.HealthChecker       = (*NotifierClient)(nil)
)

// NotifierClient posts published comments to a webhook. The configured base
// URL is the webhook endpoint itself.
type NotifierClient struct {
	req *Requester
}

// NewNotifierClient creates a NotifierClient backed by the given
// [httpclient.Client].
func NewNotifierClient(client *httpclient.Client, logger *slog.Logger) *NotifierClient {
	return &NotifierClient{req: NewRequester(client, logger)}
}

// NotifyPublished posts a comment.published payload to the webhook.
func (c *NotifierClient) NotifyPublished(ctx context.Context, id uuid.UUID, published comment.Published) error {
	body := notifier.ToCommentPublished(id, published)

	if err := c.req.Do(ctx, http.MethodPost, "", body, nil); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrUnableToNotify, err)
	}
	return nil
}

// Name returns the identifier used for health registration.
func (c *NotifierClient) Name() string {
	return c.req.Name()
}

// HealthCheck reports the circuit breaker state of the webhook endpoint.
func (c *NotifierClient) HealthCheck(_ context.Context) error {
	return breakerHealth(c.Name(), c.req.CircuitBreakerState())
}
