// Package sqlite provides the SQLite-backed comment event journal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

var (
	_ ports.EventStore    = (*EventStore)(nil)
	_ ports.EventBacklog  = (*EventStore)(nil)
	_ ports.HealthChecker = (*EventStore)(nil)
)

const defaultBusyTimeout = 5 * time.Second

// EventStore persists comment events in a single append-only table. The
// (comment_id, version) uniqueness constraint is the optimistic concurrency
// check between processes sharing the database file.
type EventStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations. A zero busyTimeout uses a default.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*EventStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	db, err := sql.Open("sqlite", dsn(filepath.Clean(path), busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &EventStore{db: db}, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Close closes the database handle.
func (s *EventStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *EventStore) Name() string {
	return "event-store"
}

// HealthCheck pings the database.
func (s *EventStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load returns the history of comment id ordered by version. A history with
// a gap in its version sequence is reported as an error rather than folded.
func (s *EventStore) Load(ctx context.Context, id uuid.UUID) ([]comment.RecordedEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, version, event_type, payload, recorded_at, correlation_id
FROM comment_events
WHERE comment_id = ?
ORDER BY version`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query events for %s: %w", id, err)
	}
	defer rows.Close()

	var history []comment.RecordedEvent
	for rows.Next() {
		var (
			eventID, eventType, correlationID string
			version, recordedAt               int64
			payload                           []byte
		)
		if err := rows.Scan(&eventID, &version, &eventType, &payload, &recordedAt, &correlationID); err != nil {
			return nil, fmt.Errorf("scan event for %s: %w", id, err)
		}

		if want := int64(len(history)) + 1; version != want {
			return nil, fmt.Errorf("history of %s has a gap: expected version %d, got %d", id, want, version)
		}

		evt, err := comment.DecodeEvent(eventType, payload)
		if err != nil {
			return nil, fmt.Errorf("event %d of %s: %w", version, id, err)
		}
		parsedID, err := uuid.Parse(eventID)
		if err != nil {
			return nil, fmt.Errorf("event %d of %s has a malformed id: %w", version, id, err)
		}

		history = append(history, comment.RecordedEvent{
			ID:            parsedID,
			CommentID:     id,
			Version:       version,
			Event:         evt,
			RecordedAt:    time.UnixMilli(recordedAt).UTC(),
			CorrelationID: correlationID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events for %s: %w", id, err)
	}
	return history, nil
}

// Append records evt when its version directly follows the last recorded
// version of the comment.
func (s *EventStore) Append(ctx context.Context, evt comment.RecordedEvent) error {
	if evt.Event == nil {
		return errors.New("event is required")
	}
	payload, err := comment.EncodeEvent(evt.Event)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var last int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM comment_events WHERE comment_id = ?`,
		evt.CommentID.String(),
	).Scan(&last); err != nil {
		return fmt.Errorf("read last version of %s: %w", evt.CommentID, err)
	}
	if evt.Version != last+1 {
		return fmt.Errorf("%w: %s is at version %d, got %d", ports.ErrVersionConflict, evt.CommentID, last, evt.Version)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO comment_events (event_id, comment_id, version, event_type, payload, recorded_at, correlation_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		evt.ID.String(),
		evt.CommentID.String(),
		evt.Version,
		evt.Event.Type(),
		payload,
		evt.RecordedAt.UTC().UnixMilli(),
		evt.CorrelationID,
	); err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %s version %d: %w", ports.ErrVersionConflict, evt.CommentID, evt.Version, err)
		}
		return fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// LatestEvents returns the last event of every comment whose history ends
// with one of eventTypes recorded before cutoff, oldest first.
func (s *EventStore) LatestEvents(ctx context.Context, cutoff time.Time, eventTypes ...string) ([]comment.RecordedEvent, error) {
	if len(eventTypes) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(eventTypes)+1)
	for _, t := range eventTypes {
		args = append(args, t)
	}
	args = append(args, cutoff.UTC().UnixMilli())

	rows, err := s.db.QueryContext(ctx, `
SELECT e.event_id, e.comment_id, e.version, e.event_type, e.payload, e.recorded_at, e.correlation_id
FROM comment_events e
JOIN (
    SELECT comment_id, MAX(version) AS version
    FROM comment_events
    GROUP BY comment_id
) tail ON tail.comment_id = e.comment_id AND tail.version = e.version
WHERE e.event_type IN (?`+strings.Repeat(", ?", len(eventTypes)-1)+`)
  AND e.recorded_at < ?
ORDER BY e.recorded_at, e.comment_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query latest events: %w", err)
	}
	defer rows.Close()

	var tails []comment.RecordedEvent
	for rows.Next() {
		var (
			eventID, commentID, eventType, correlationID string
			version, recordedAt                          int64
			payload                                      []byte
		)
		if err := rows.Scan(&eventID, &commentID, &version, &eventType, &payload, &recordedAt, &correlationID); err != nil {
			return nil, fmt.Errorf("scan latest event: %w", err)
		}

		parsedComment, err := uuid.Parse(commentID)
		if err != nil {
			return nil, fmt.Errorf("latest event has a malformed comment id %q: %w", commentID, err)
		}
		parsedID, err := uuid.Parse(eventID)
		if err != nil {
			return nil, fmt.Errorf("event %d of %s has a malformed id: %w", version, commentID, err)
		}
		evt, err := comment.DecodeEvent(eventType, payload)
		if err != nil {
			return nil, fmt.Errorf("event %d of %s: %w", version, commentID, err)
		}

		tails = append(tails, comment.RecordedEvent{
			ID:            parsedID,
			CommentID:     parsedComment,
			Version:       version,
			Event:         evt,
			RecordedAt:    time.UnixMilli(recordedAt).UTC(),
			CorrelationID: correlationID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest events: %w", err)
	}
	return tails, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	default:
		return false
	}
}
