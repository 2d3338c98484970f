package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// Reactor names, used as bus subscriber names and metric labels.
const (
	ReactorVerifiedEmail    = "verified_email"
	ReactorAssignIdentifier = "assign_identifier"
	ReactorPublish          = "publish"
	ReactorNotifyPublished  = "notify_published"
)

// ReactorOptions holds the settings shared by every reactor.
type ReactorOptions struct {
	// CallTimeout bounds each downstream port call. Zero leaves only the
	// caller's deadline in place.
	CallTimeout time.Duration
	Logger      *slog.Logger
	Metrics     *telemetry.Metrics
}

// reactor carries the plumbing common to all reactors: a span and a metric
// per run, timeouts on port calls, and the rule that rejections of follow-up
// commands end the run quietly instead of asking for redelivery.
type reactor struct {
	name     string
	comments ports.CommentService
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

func newReactor(name string, comments ports.CommentService, opts ReactorOptions) reactor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return reactor{
		name:     name,
		comments: comments,
		timeout:  opts.CallTimeout,
		logger:   logger.With(slog.String("reactor", name)),
		metrics:  opts.Metrics,
	}
}

// run executes one reaction for comment id. fn reports a telemetry result.
func (r reactor) run(ctx context.Context, id uuid.UUID, fn func(context.Context, *slog.Logger) (string, error)) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "reactor."+r.name,
		trace.WithAttributes(
			telemetry.AttrReactor.String(r.name),
			telemetry.AttrCommentID.String(id.String()),
		),
	)
	defer span.End()

	logger := r.logger.With(slog.String("comment_id", id.String()))
	ctx = logging.WithLogger(ctx, logger)

	result, err := fn(ctx, logger)
	if err != nil {
		result = telemetry.ResultError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "reactor failed",
			slog.String("operation", r.name),
			slog.Any("error", err),
		)
	}
	span.SetAttributes(telemetry.AttrResult.String(result))
	r.metrics.RecordReactorRun(ctx, r.name, result)
	return err
}

// call runs a port call under the reactor's timeout and makes sure failures
// carry sentinel.
func (r reactor) call(ctx context.Context, sentinel error, fn func(context.Context) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	err := fn(ctx)
	if err == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// submit hands a follow-up command to the command handler. A rejection means
// another delivery already got there first.
func (r reactor) submit(ctx context.Context, logger *slog.Logger, id uuid.UUID, cmd comment.Command) (string, error) {
	err := r.comments.Handle(ctx, id, cmd)
	var rejection *comment.Rejection
	switch {
	case err == nil:
		return telemetry.ResultSuccess, nil
	case errors.As(err, &rejection):
		logger.InfoContext(ctx, "follow-up command rejected",
			slog.String("command", cmd.Name()),
			slog.String("code", rejection.Code),
		)
		return telemetry.ResultSkipped, nil
	default:
		return telemetry.ResultError, err
	}
}

func (r reactor) skip(ctx context.Context, logger *slog.Logger, state comment.State) (string, error) {
	logger.DebugContext(ctx, "nothing to do", slog.String("status", state.Status().String()))
	return telemetry.ResultSkipped, nil
}
