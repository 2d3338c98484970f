package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// StateQuerier rebuilds the current state of a comment.
type StateQuerier interface {
	// State returns comment.NotStarted for an id with no history.
	// Infrastructure failures wrap ErrQueryUnavailable.
	State(ctx context.Context, id uuid.UUID) (comment.State, error)
}

// CommandSubmitter is the entry point for every command, whether it comes
// from an inbound adapter or a reactor.
type CommandSubmitter interface {
	// Handle decides cmd against the current state and records the resulting
	// event. Rejections are returned unchanged as *comment.Rejection values;
	// failures to read or record history wrap ErrQueryUnavailable or
	// ErrHandlingUnavailable.
	Handle(ctx context.Context, id uuid.UUID, cmd comment.Command) error
}

// CommentService is the service port implemented by the application layer
// and called by inbound adapters.
type CommentService interface {
	StateQuerier
	CommandSubmitter
}

// VerifiedEmailRefresher runs the verified email check for comments on demand.
type VerifiedEmailRefresher interface {
	// Refresh confirms the author's verified email address on a comment in
	// progress when the directory reports one.
	Refresh(ctx context.Context, id uuid.UUID) error
}
