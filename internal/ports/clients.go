package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// IdentifierAssigner reserves a persistent identifier for a comment.
// Implemented by the deposition ACL adapter.
type IdentifierAssigner interface {
	// AssignIdentifier deposits the comment content and returns the DOI
	// reserved for it together with the service's record id.
	// Failures wrap ErrUnableToAssignIdentifier.
	AssignIdentifier(ctx context.Context, id uuid.UUID, content comment.Content) (comment.Assignment, error)
}

// IdentifierPublisher makes a deposited comment publicly available.
type IdentifierPublisher interface {
	// PublishWithIdentifier publishes the deposition with the given record id.
	// Failures wrap ErrUnableToPublish.
	PublishWithIdentifier(ctx context.Context, externalID int64) error
}

// VerifiedEmailChecker asks the user directory whether an author has a
// verified email address.
type VerifiedEmailChecker interface {
	// CheckVerifiedEmail returns false when the author has no verified address.
	// Failures wrap ErrUnableToCheckEmail.
	CheckVerifiedEmail(ctx context.Context, authorID string) (bool, error)
}

// PublicationNotifier announces published comments to an external channel.
type PublicationNotifier interface {
	// NotifyPublished failures wrap ErrUnableToNotify.
	NotifyPublished(ctx context.Context, id uuid.UUID, published comment.Published) error
}
