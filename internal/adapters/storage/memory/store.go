// Package memory provides an in-process comment event journal for tests and
// single-instance development runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

var (
	_ ports.EventStore    = (*EventStore)(nil)
	_ ports.EventBacklog  = (*EventStore)(nil)
	_ ports.HealthChecker = (*EventStore)(nil)
)

// EventStore keeps every comment history in a map guarded by a mutex.
type EventStore struct {
	mu      sync.RWMutex
	streams map[uuid.UUID][]comment.RecordedEvent
}

// New creates an empty EventStore.
func New() *EventStore {
	return &EventStore{streams: make(map[uuid.UUID][]comment.RecordedEvent)}
}

// Load returns a copy of the history of comment id.
func (s *EventStore) Load(ctx context.Context, id uuid.UUID) ([]comment.RecordedEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[id]
	history := make([]comment.RecordedEvent, len(stream))
	copy(history, stream)
	return history, nil
}

// Append records evt when its version directly follows the last recorded one.
func (s *EventStore) Append(ctx context.Context, evt comment.RecordedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt.Event == nil {
		return errors.New("event is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last := int64(len(s.streams[evt.CommentID]))
	if evt.Version != last+1 {
		return fmt.Errorf("%w: %s is at version %d, got %d", ports.ErrVersionConflict, evt.CommentID, last, evt.Version)
	}
	s.streams[evt.CommentID] = append(s.streams[evt.CommentID], evt)
	return nil
}

// LatestEvents returns the tail of every stream that stopped at one of
// eventTypes before cutoff, oldest first.
func (s *EventStore) LatestEvents(ctx context.Context, cutoff time.Time, eventTypes ...string) ([]comment.RecordedEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tails []comment.RecordedEvent
	for _, stream := range s.streams {
		last := stream[len(stream)-1]
		if slices.Contains(eventTypes, last.Event.Type()) && last.RecordedAt.Before(cutoff) {
			tails = append(tails, last)
		}
	}
	slices.SortFunc(tails, func(a, b comment.RecordedEvent) int {
		if c := a.RecordedAt.Compare(b.RecordedAt); c != 0 {
			return c
		}
		return strings.Compare(a.CommentID.String(), b.CommentID.String())
	})
	return tails, nil
}

// Name implements ports.HealthChecker.
func (s *EventStore) Name() string {
	return "event-store"
}

// HealthCheck always succeeds.
func (s *EventStore) HealthCheck(context.Context) error {
	return nil
}

// Close is a no-op so both journal drivers share a shutdown path.
func (s *EventStore) Close() error {
	return nil
}
