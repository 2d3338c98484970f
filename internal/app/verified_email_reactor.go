package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/app/fanout"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

var _ ports.VerifiedEmailRefresher = (*VerifiedEmailReactor)(nil)

const defaultEmailCheckConcurrency = 4

// VerifiedEmailReactor confirms the author's verified email address on
// comments in progress. It runs on demand rather than on an event.
type VerifiedEmailReactor struct {
	reactor
	checker     ports.VerifiedEmailChecker
	concurrency int
}

// NewVerifiedEmailReactor creates a VerifiedEmailReactor. concurrency bounds
// RefreshAll; values below 1 use a default.
func NewVerifiedEmailReactor(comments ports.CommentService, checker ports.VerifiedEmailChecker, concurrency int, opts ReactorOptions) *VerifiedEmailReactor {
	if concurrency < 1 {
		concurrency = defaultEmailCheckConcurrency
	}
	return &VerifiedEmailReactor{
		reactor:     newReactor(ReactorVerifiedEmail, comments, opts),
		checker:     checker,
		concurrency: concurrency,
	}
}

// Refresh asks the directory about the author of comment id and submits
// ConfirmVerifiedEmail when the address is verified. Comments outside
// composition, or already confirmed, are left alone.
func (r *VerifiedEmailReactor) Refresh(ctx context.Context, id uuid.UUID) error {
	return r.run(ctx, id, func(ctx context.Context, logger *slog.Logger) (string, error) {
		state, err := r.comments.State(ctx, id)
		if err != nil {
			return telemetry.ResultError, err
		}
		draft, ok := state.(comment.InProgress)
		if !ok || draft.VerifiedEmailAddressExists {
			return r.skip(ctx, logger, state)
		}

		var verified bool
		err = r.call(ctx, ports.ErrUnableToCheckEmail, func(ctx context.Context) error {
			var callErr error
			verified, callErr = r.checker.CheckVerifiedEmail(ctx, draft.AuthorID)
			return callErr
		})
		if err != nil {
			return telemetry.ResultError, err
		}
		if !verified {
			logger.InfoContext(ctx, "author has no verified email address")
			return telemetry.ResultSkipped, nil
		}
		return r.submit(ctx, logger, id, comment.ConfirmVerifiedEmail{})
	})
}

// RefreshAll runs Refresh for every id with bounded concurrency. The joined
// error names each comment that failed.
func (r *VerifiedEmailReactor) RefreshAll(ctx context.Context, ids []uuid.UUID) error {
	return fanout.Join(ids, fanout.Each(ctx, r.concurrency, ids, r.Refresh))
}
