package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/review-comments/internal/adapters/clients/acl/directory"
	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.VerifiedEmailChecker = (*DirectoryClient)(nil)
	_ ports.HealthChecker        = (*DirectoryClient)(nil)
)

// DirectoryClient is the outbound adapter for the user directory. It
// implements [ports.VerifiedEmailChecker].
type DirectoryClient struct {
	req *Requester
}

// NewDirectoryClient creates a DirectoryClient backed by the given
// [httpclient.Client].
func NewDirectoryClient(client *httpclient.Client, logger *slog.Logger) *DirectoryClient {
	return &DirectoryClient{req: NewRequester(client, logger)}
}

// CheckVerifiedEmail fetches GET /contact-emails/{orcid}. An author without a
// contact email (404) has no verified address.
func (c *DirectoryClient) CheckVerifiedEmail(ctx context.Context, authorID string) (bool, error) {
	path := "/contact-emails/" + url.PathEscape(authorID)

	var dto directory.ContactEmailDTO
	if err := c.req.Do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ports.ErrUnableToCheckEmail, err)
	}

	verified, err := directory.IsVerified(&dto)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ports.ErrUnableToCheckEmail, err)
	}
	return verified, nil
}

// Name returns the identifier used for health registration.
func (c *DirectoryClient) Name() string {
	return c.req.Name()
}

// HealthCheck reports the circuit breaker state of the directory.
func (c *DirectoryClient) HealthCheck(_ context.Context) error {
	return breakerHealth(c.Name(), c.req.CircuitBreakerState())
}
