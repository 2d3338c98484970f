package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// AssignIdentifierReactor reserves an identifier for a comment once its
// publication has been requested.
type AssignIdentifierReactor struct {
	reactor
	assigner ports.IdentifierAssigner
}

// NewAssignIdentifierReactor creates an AssignIdentifierReactor.
func NewAssignIdentifierReactor(comments ports.CommentService, assigner ports.IdentifierAssigner, opts ReactorOptions) *AssignIdentifierReactor {
	return &AssignIdentifierReactor{
		reactor:  newReactor(ReactorAssignIdentifier, comments, opts),
		assigner: assigner,
	}
}

// Subscribe registers the reactor for PublicationRequested events.
func (r *AssignIdentifierReactor) Subscribe(sub ports.EventSubscriber) {
	sub.Subscribe(r.name, r.Handle, comment.TypePublicationRequested)
}

// Handle deposits the comment content and records the assigned identifier.
// Comments that already have an identifier are left alone.
func (r *AssignIdentifierReactor) Handle(ctx context.Context, evt comment.RecordedEvent) error {
	id := evt.CommentID
	return r.run(ctx, id, func(ctx context.Context, logger *slog.Logger) (string, error) {
		state, err := r.comments.State(ctx, id)
		if err != nil {
			return telemetry.ResultError, err
		}
		pending, ok := state.(comment.BeingPublished)
		if !ok || pending.Assignment != nil {
			return r.skip(ctx, logger, state)
		}

		var assignment comment.Assignment
		err = r.call(ctx, ports.ErrUnableToAssignIdentifier, func(ctx context.Context) error {
			var callErr error
			assignment, callErr = r.assigner.AssignIdentifier(ctx, id, pending.Content)
			return callErr
		})
		if err != nil {
			return telemetry.ResultError, err
		}

		logger.InfoContext(ctx, "identifier assigned",
			slog.String("identifier", assignment.Identifier.String()),
			slog.Int64("external_id", assignment.ExternalID),
		)
		return r.submit(ctx, logger, id, comment.MarkIdentifierAssigned{
			Identifier: assignment.Identifier,
			ExternalID: assignment.ExternalID,
		})
	})
}

// PublishReactor publishes a comment once its identifier is assigned.
type PublishReactor struct {
	reactor
	publisher ports.IdentifierPublisher
}

// NewPublishReactor creates a PublishReactor.
func NewPublishReactor(comments ports.CommentService, publisher ports.IdentifierPublisher, opts ReactorOptions) *PublishReactor {
	return &PublishReactor{
		reactor:   newReactor(ReactorPublish, comments, opts),
		publisher: publisher,
	}
}

// Subscribe registers the reactor for IdentifierAssigned events.
func (r *PublishReactor) Subscribe(sub ports.EventSubscriber) {
	sub.Subscribe(r.name, r.Handle, comment.TypeIdentifierAssigned)
}

// Handle publishes the deposition behind the assigned identifier and marks the
// comment published. The record id is taken from the current state so a stale
// redelivery cannot publish a different record.
func (r *PublishReactor) Handle(ctx context.Context, evt comment.RecordedEvent) error {
	id := evt.CommentID
	return r.run(ctx, id, func(ctx context.Context, logger *slog.Logger) (string, error) {
		state, err := r.comments.State(ctx, id)
		if err != nil {
			return telemetry.ResultError, err
		}
		pending, ok := state.(comment.BeingPublished)
		if !ok || pending.Assignment == nil {
			return r.skip(ctx, logger, state)
		}

		externalID := pending.Assignment.ExternalID
		err = r.call(ctx, ports.ErrUnableToPublish, func(ctx context.Context) error {
			return r.publisher.PublishWithIdentifier(ctx, externalID)
		})
		if err != nil {
			return telemetry.ResultError, err
		}
		return r.submit(ctx, logger, id, comment.MarkPublished{})
	})
}

// NotifyPublishedReactor announces published comments. Notification failures
// never change the comment.
type NotifyPublishedReactor struct {
	reactor
	notifier ports.PublicationNotifier
}

// NewNotifyPublishedReactor creates a NotifyPublishedReactor.
func NewNotifyPublishedReactor(comments ports.CommentService, notifier ports.PublicationNotifier, opts ReactorOptions) *NotifyPublishedReactor {
	return &NotifyPublishedReactor{
		reactor:  newReactor(ReactorNotifyPublished, comments, opts),
		notifier: notifier,
	}
}

// Subscribe registers the reactor for CommentPublished events.
func (r *NotifyPublishedReactor) Subscribe(sub ports.EventSubscriber) {
	sub.Subscribe(r.name, r.Handle, comment.TypePublished)
}

// Handle sends the publication notice for a published comment.
func (r *NotifyPublishedReactor) Handle(ctx context.Context, evt comment.RecordedEvent) error {
	id := evt.CommentID
	return r.run(ctx, id, func(ctx context.Context, logger *slog.Logger) (string, error) {
		state, err := r.comments.State(ctx, id)
		if err != nil {
			return telemetry.ResultError, err
		}
		published, ok := state.(comment.Published)
		if !ok {
			return r.skip(ctx, logger, state)
		}

		err = r.call(ctx, ports.ErrUnableToNotify, func(ctx context.Context) error {
			return r.notifier.NotifyPublished(ctx, id, published)
		})
		if err != nil {
			return telemetry.ResultError, err
		}
		return telemetry.ResultSuccess, nil
	})
}
