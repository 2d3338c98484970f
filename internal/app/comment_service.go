// Package app provides the application services that sit between the inbound
// adapters and the comment aggregate: the command handler that records events
// and the reactors that turn published events into follow-up commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// Compile-time check that CommentService implements ports.CommentService.
var _ ports.CommentService = (*CommentService)(nil)

const (
	tracerName            = "app"
	defaultAppendAttempts = 3
	conflictInterval      = 10 * time.Millisecond
	conflictMaxInterval   = 200 * time.Millisecond
)

// CommentService is the command handler for comments. It rebuilds state from
// the journal, runs the decider, records the resulting event and broadcasts
// it. Work on one comment id is serialized; different ids run in parallel.
type CommentService struct {
	store     ports.EventStore
	publisher ports.EventPublisher
	logger    *slog.Logger
	metrics   *telemetry.Metrics
	locks     *idLocks

	appendAttempts int
	now            func() time.Time
	newID          func() uuid.UUID
}

// ServiceOption configures a CommentService.
type ServiceOption func(*CommentService)

// WithMetrics records command and append metrics on m.
func WithMetrics(m *telemetry.Metrics) ServiceOption {
	return func(s *CommentService) { s.metrics = m }
}

// WithAppendAttempts bounds how many times a command is decided again after
// another writer recorded an event first. Values below 1 are ignored.
func WithAppendAttempts(n int) ServiceOption {
	return func(s *CommentService) {
		if n >= 1 {
			s.appendAttempts = n
		}
	}
}

// WithClock overrides the time source used for RecordedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *CommentService) { s.now = now }
}

// NewCommentService creates a CommentService. A nil logger discards output.
func NewCommentService(store ports.EventStore, publisher ports.EventPublisher, logger *slog.Logger, opts ...ServiceOption) *CommentService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &CommentService{
		store:          store,
		publisher:      publisher,
		logger:         logger,
		locks:          newIDLocks(),
		appendAttempts: defaultAppendAttempts,
		now:            time.Now,
		newID:          uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State rebuilds the current state of a comment from its history.
func (s *CommentService) State(ctx context.Context, id uuid.UUID) (comment.State, error) {
	history, err := s.store.Load(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load comment history",
			slog.String("operation", "State"),
			slog.String("comment_id", id.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", ports.ErrQueryUnavailable, err)
	}
	return comment.Replay(eventsOf(history)), nil
}

// Handle decides cmd against the current state of comment id and records the
// resulting event, if any. Rejections are returned unchanged.
func (s *CommentService) Handle(ctx context.Context, id uuid.UUID, cmd comment.Command) error {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "comment.handle",
		trace.WithAttributes(
			telemetry.AttrCommentID.String(id.String()),
			telemetry.AttrCommand.String(cmd.Name()),
		),
	)
	defer span.End()

	result, err := s.handle(ctx, id, cmd)
	s.metrics.RecordCommand(ctx, cmd.Name(), result, time.Since(start))

	var rejection *comment.Rejection
	switch {
	case err == nil:
		span.SetAttributes(telemetry.AttrResult.String(result))
	case errors.As(err, &rejection):
		span.SetAttributes(telemetry.AttrResult.String(result), attribute.String("comment.rejection", rejection.Code))
		s.logger.InfoContext(ctx, "command rejected",
			slog.String("command", cmd.Name()),
			slog.String("comment_id", id.String()),
			slog.String("code", rejection.Code),
		)
	case errors.Is(err, domain.ErrValidation):
		span.SetAttributes(telemetry.AttrResult.String(result))
		s.logger.InfoContext(ctx, "command invalid",
			slog.String("command", cmd.Name()),
			slog.String("comment_id", id.String()),
			slog.Any("error", err),
		)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "failed to handle command",
			slog.String("operation", "Handle"),
			slog.String("command", cmd.Name()),
			slog.String("comment_id", id.String()),
			slog.Any("error", err),
		)
	}
	return err
}

func (s *CommentService) handle(ctx context.Context, id uuid.UUID, cmd comment.Command) (string, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return telemetry.ResultError, fmt.Errorf("%w: %w", ports.ErrHandlingUnavailable, err)
	}
	defer unlock()

	var recorded *comment.RecordedEvent
	attempt := func() error {
		recorded = nil
		history, err := s.store.Load(ctx, id)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %w", ports.ErrQueryUnavailable, err))
		}

		evt, err := comment.Decide(comment.Replay(eventsOf(history)), cmd)
		if err != nil {
			return backoff.Permanent(err)
		}
		if evt == nil {
			return nil
		}

		rec := comment.RecordedEvent{
			ID:            s.newID(),
			CommentID:     id,
			Version:       nextVersion(history),
			Event:         evt,
			RecordedAt:    s.now().UTC(),
			CorrelationID: reqctx.CorrelationID(ctx),
		}
		if err := s.store.Append(ctx, rec); err != nil {
			if errors.Is(err, ports.ErrVersionConflict) {
				s.logger.WarnContext(ctx, "lost append race, deciding again",
					slog.String("comment_id", id.String()),
					slog.Int64("version", rec.Version),
				)
				return err
			}
			return backoff.Permanent(fmt.Errorf("%w: %w", ports.ErrHandlingUnavailable, err))
		}
		recorded = &rec
		return nil
	}

	if err := backoff.Retry(attempt, s.conflictBackOff(ctx)); err != nil {
		var rejection *comment.Rejection
		switch {
		case errors.As(err, &rejection):
			return telemetry.ResultRejected, err
		case errors.Is(err, domain.ErrValidation):
			return telemetry.ResultRejected, err
		case errors.Is(err, domain.ErrUnavailable):
			return telemetry.ResultError, err
		default:
			// Exhausted version conflicts or a canceled context.
			return telemetry.ResultError, fmt.Errorf("%w: %w", ports.ErrHandlingUnavailable, err)
		}
	}
	if recorded == nil {
		return telemetry.ResultNoop, nil
	}

	s.metrics.RecordEventAppended(ctx, recorded.Event.Type())

	// Publishing under the id lock keeps delivery in commit order.
	if err := s.publisher.Publish(ctx, *recorded); err != nil {
		return telemetry.ResultError, fmt.Errorf("%w: event %s recorded but not broadcast: %w",
			ports.ErrHandlingUnavailable, recorded.Event.Type(), err)
	}
	return telemetry.ResultAccepted, nil
}

func (s *CommentService) conflictBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = conflictInterval
	b.MaxInterval = conflictMaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.appendAttempts-1)), ctx)
}

func eventsOf(history []comment.RecordedEvent) []comment.Event {
	events := make([]comment.Event, len(history))
	for i, rec := range history {
		events[i] = rec.Event
	}
	return events
}

func nextVersion(history []comment.RecordedEvent) int64 {
	if len(history) == 0 {
		return 1
	}
	return history[len(history)-1].Version + 1
}
