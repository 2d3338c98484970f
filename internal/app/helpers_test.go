package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

const (
	testAuthor     = "0000-0002-1825-0097"
	testPrereview  = int64(42)
	testIdentifier = comment.Identifier("10.5281/zenodo.107286")
	testExternalID = int64(107286)
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testContent() comment.Content {
	return comment.Content{
		AuthorID:    testAuthor,
		PrereviewID: testPrereview,
		Body:        "<p>The sample size is too small to support the conclusion.</p>",
		Persona:     comment.PersonaPseudonym,
	}
}

// history wraps events into a journal history for id starting at version 1.
func history(id uuid.UUID, events ...comment.Event) []comment.RecordedEvent {
	recorded := make([]comment.RecordedEvent, len(events))
	for i, evt := range events {
		recorded[i] = comment.RecordedEvent{
			ID:         uuid.New(),
			CommentID:  id,
			Version:    int64(i + 1),
			Event:      evt,
			RecordedAt: testNow,
		}
	}
	return recorded
}

func recordedAs(id uuid.UUID, version int64, evt comment.Event) comment.RecordedEvent {
	return comment.RecordedEvent{ID: uuid.New(), CommentID: id, Version: version, Event: evt, RecordedAt: testNow}
}

func beingPublished(assignment *comment.Assignment) comment.BeingPublished {
	return comment.BeingPublished{Content: testContent(), Assignment: assignment}
}

func testAssignment() *comment.Assignment {
	return &comment.Assignment{Identifier: testIdentifier, ExternalID: testExternalID}
}
