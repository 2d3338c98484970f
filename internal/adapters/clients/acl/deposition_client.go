package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/clients/acl/deposition"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.IdentifierAssigner  = (*DepositionClient)(nil)
	_ ports.IdentifierPublisher = (*DepositionClient)(nil)
	_ ports.HealthChecker       = (*DepositionClient)(nil)
)

// DepositionClient is the outbound adapter for the deposition service that
// reserves and publishes DOIs. It implements [ports.IdentifierAssigner] and
// [ports.IdentifierPublisher].
//
// Requests and responses are translated by the [deposition] subpackage.
// Every failure wraps the matching port sentinel on top of the domain error
// produced by [TranslateHTTPError].
type DepositionClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewDepositionClient creates a DepositionClient that sends requests through
// the given [httpclient.Client]. The client's BaseURL should point to the
// API root (e.g. "https://zenodo.org/api").
func NewDepositionClient(client *httpclient.Client, logger *slog.Logger) *DepositionClient {
	req := NewRequester(client, logger)
	return &DepositionClient{req: req, logger: req.logger}
}

// AssignIdentifier creates a deposition for the comment with POST
// /deposit/depositions and returns the DOI the service pre-reserved for it.
func (c *DepositionClient) AssignIdentifier(
	ctx context.Context, id uuid.UUID, content comment.Content,
) (comment.Assignment, error) {
	body := deposition.ToCreateDepositionRequest(id, content)

	var dto deposition.DepositionDTO
	if err := c.req.Do(ctx, http.MethodPost, "/deposit/depositions", body, &dto); err != nil {
		return comment.Assignment{}, fmt.Errorf("%w: %w", ports.ErrUnableToAssignIdentifier, err)
	}

	assignment, err := deposition.ToAssignment(&dto)
	if err != nil {
		c.logger.ErrorContext(ctx, "unusable deposition response",
			slog.String("operation", "AssignIdentifier"),
			slog.String("comment_id", id.String()),
			slog.Int64("deposition_id", dto.ID),
			slog.Any("error", err),
		)
		return comment.Assignment{}, fmt.Errorf("%w: %w", ports.ErrUnableToAssignIdentifier, err)
	}
	return assignment, nil
}

// PublishWithIdentifier publishes the deposition with POST
// /deposit/depositions/{id}/actions/publish.
func (c *DepositionClient) PublishWithIdentifier(ctx context.Context, externalID int64) error {
	path := fmt.Sprintf("/deposit/depositions/%d/actions/publish", externalID)

	if err := c.req.Do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrUnableToPublish, err)
	}
	return nil
}

// Name returns the identifier used for health registration.
func (c *DepositionClient) Name() string {
	return c.req.Name()
}

// HealthCheck reports the circuit breaker state of the deposition service.
func (c *DepositionClient) HealthCheck(_ context.Context) error {
	return breakerHealth(c.Name(), c.req.CircuitBreakerState())
}
