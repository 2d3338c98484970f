package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/app/fanout"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// stalledEventTypes are the events a reactor has to act on before a comment
// can leave BeingPublished.
var stalledEventTypes = []string{comment.TypePublicationRequested, comment.TypeIdentifierAssigned}

// RedriveOptions configures a Redriver.
type RedriveOptions struct {
	// Interval is the time between sweeps. Zero sweeps only once.
	Interval time.Duration
	// StalledAfter is the grace period a comment gets on the periodic
	// sweeps before its last event is published again.
	StalledAfter time.Duration
	Logger       *slog.Logger
	Metrics      *telemetry.Metrics
}

// Redriver publishes the last event of comments that stopped partway through
// publication again, so the reactor waiting on it runs once more. A comment
// stalls when the bus gave up on an event, when the process stopped before
// delivering it, or when it was recorded after the bus closed.
type Redriver struct {
	service      *CommentService
	backlog      ports.EventBacklog
	interval     time.Duration
	stalledAfter time.Duration
	logger       *slog.Logger
	metrics      *telemetry.Metrics
}

// NewRedriver creates a Redriver that publishes through service.
func NewRedriver(service *CommentService, backlog ports.EventBacklog, opts RedriveOptions) *Redriver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Redriver{
		service:      service,
		backlog:      backlog,
		interval:     opts.Interval,
		stalledAfter: opts.StalledAfter,
		logger:       logger.With(slog.String("component", "redrive")),
		metrics:      opts.Metrics,
	}
}

// Run sweeps once straight away without a grace period, since nothing can be
// in flight in a process that just started, and then every Interval until
// ctx ends.
func (r *Redriver) Run(ctx context.Context) {
	r.sweep(ctx, 0)
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx, r.stalledAfter)
		}
	}
}

func (r *Redriver) sweep(ctx context.Context, stalledAfter time.Duration) {
	n, err := r.Redrive(ctx, stalledAfter)
	if err != nil && ctx.Err() == nil {
		r.logger.ErrorContext(ctx, "redrive sweep failed",
			slog.String("operation", "Redrive"),
			slog.Int("republished", n),
			slog.Any("error", err),
		)
		return
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "republished stalled events", slog.Int("count", n))
	}
}

// Redrive publishes again the last event of every comment that has waited on
// a reactor for longer than stalledAfter, and reports how many it published.
// The error names each comment that could not be redriven.
func (r *Redriver) Redrive(ctx context.Context, stalledAfter time.Duration) (int, error) {
	cutoff := r.service.now().Add(-stalledAfter)
	tails, err := r.backlog.LatestEvents(ctx, cutoff, stalledEventTypes...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ports.ErrQueryUnavailable, err)
	}

	ids := make([]uuid.UUID, len(tails))
	errs := make([]error, len(tails))
	published := 0
	for i, tail := range tails {
		ids[i] = tail.CommentID
		ok, err := r.republish(ctx, tail)
		if ok {
			published++
		}
		errs[i] = err
	}
	return published, fanout.Join(ids, errs)
}

// republish publishes tail under the comment's lock, unless the comment has
// moved on since it was listed.
func (r *Redriver) republish(ctx context.Context, tail comment.RecordedEvent) (bool, error) {
	unlock, err := r.service.locks.Lock(ctx, tail.CommentID)
	if err != nil {
		return false, err
	}
	defer unlock()

	history, err := r.service.store.Load(ctx, tail.CommentID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ports.ErrQueryUnavailable, err)
	}
	if len(history) == 0 || history[len(history)-1].ID != tail.ID {
		return false, nil
	}

	if err := r.service.publisher.Publish(ctx, tail); err != nil {
		return false, err
	}
	r.metrics.RecordRedrive(ctx, tail.Event.Type())
	r.logger.InfoContext(ctx, "republished stalled event",
		slog.String("comment_id", tail.CommentID.String()),
		slog.String("event_type", tail.Event.Type()),
		slog.Int64("version", tail.Version),
		slog.Time("recorded_at", tail.RecordedAt),
	)
	return true, nil
}
