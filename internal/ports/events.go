package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// EventStore is the append-only journal of comment events.
type EventStore interface {
	// Load returns the history of a comment ordered by version. An unknown id
	// yields an empty history.
	Load(ctx context.Context, id uuid.UUID) ([]comment.RecordedEvent, error)

	// Append records evt. evt.Version must be exactly one past the last
	// recorded version for evt.CommentID; otherwise ErrVersionConflict is
	// returned and nothing is written.
	Append(ctx context.Context, evt comment.RecordedEvent) error
}

// EventBacklog finds comments whose history stopped at a given kind of event.
type EventBacklog interface {
	// LatestEvents returns the last recorded event of every comment whose
	// last event has one of eventTypes and was recorded before cutoff,
	// oldest first.
	LatestEvents(ctx context.Context, cutoff time.Time, eventTypes ...string) ([]comment.RecordedEvent, error)
}

// EventHandler processes one delivered event. Returning an error asks the
// bus to deliver the event again.
type EventHandler func(ctx context.Context, evt comment.RecordedEvent) error

// EventPublisher broadcasts recorded events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, evt comment.RecordedEvent) error
}

// EventSubscriber registers handlers for published events. Delivery is at
// least once and ordered per subscriber.
type EventSubscriber interface {
	// Subscribe registers handler under name for the given event types.
	// No types means every event.
	Subscribe(name string, handler EventHandler, eventTypes ...string)
}
