package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/eventbus"
	"github.com/jsamuelsen11/review-comments/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

const pipelineTimeout = 5 * time.Second

// countingAssigner hands out identifiers and fails the first failures calls.
type countingAssigner struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (a *countingAssigner) AssignIdentifier(_ context.Context, _ uuid.UUID, _ comment.Content) (comment.Assignment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.calls <= a.failures {
		return comment.Assignment{}, fmt.Errorf("%w: deposition unavailable", ports.ErrUnableToAssignIdentifier)
	}
	return comment.Assignment{
		Identifier: comment.Identifier(fmt.Sprintf("10.5281/zenodo.%d", 1000+a.calls)),
		ExternalID: int64(1000 + a.calls),
	}, nil
}

func (a *countingAssigner) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

type countingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *countingPublisher) PublishWithIdentifier(context.Context, int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return nil
}

func (p *countingPublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// auditLog records every event the bus delivers, in delivery order.
type auditLog struct {
	mu     sync.Mutex
	events []comment.RecordedEvent
}

func (l *auditLog) handle(_ context.Context, evt comment.RecordedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return nil
}

func (l *auditLog) versions(id uuid.UUID) []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []int64
	for _, evt := range l.events {
		if evt.CommentID == id {
			out = append(out, evt.Version)
		}
	}
	return out
}

// pipeline is the command handler, the bus and the publication reactors
// running against one journal.
type pipeline struct {
	store     *memory.EventStore
	bus       *eventbus.Bus
	service   *CommentService
	assigner  *countingAssigner
	publisher *countingPublisher
	audit     *auditLog
}

func newPipeline(t *testing.T, store *memory.EventStore, maxAttempts, assignFailures int) *pipeline {
	t.Helper()

	bus := eventbus.New(eventbus.Options{
		BufferSize:      4,
		MaxAttempts:     maxAttempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
		Logger:          discardLogger(),
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()
		_ = bus.Close(ctx)
	})

	p := &pipeline{
		store:     store,
		bus:       bus,
		service:   NewCommentService(store, bus, discardLogger()),
		assigner:  &countingAssigner{failures: assignFailures},
		publisher: &countingPublisher{},
		audit:     &auditLog{},
	}
	opts := ReactorOptions{CallTimeout: time.Second, Logger: discardLogger()}
	NewAssignIdentifierReactor(p.service, p.assigner, opts).Subscribe(bus)
	NewPublishReactor(p.service, p.publisher, opts).Subscribe(bus)
	bus.Subscribe("audit", p.audit.handle)
	return p
}

func (p *pipeline) redriver() *Redriver {
	return NewRedriver(p.service, p.store, RedriveOptions{
		Interval: 10 * time.Millisecond,
		Logger:   discardLogger(),
	})
}

// compose takes a new comment up to ReadyForPublishing.
func (p *pipeline) compose(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	cmds := []comment.Command{
		comment.Start{AuthorID: testAuthor, PrereviewID: testPrereview},
		comment.EnterBody{Body: testContent().Body},
		comment.ChoosePersona{Persona: comment.PersonaPseudonym},
		comment.DeclareCompetingInterests{},
		comment.AgreeToCode{},
		comment.ConfirmVerifiedEmail{},
	}
	for _, cmd := range cmds {
		if err := p.service.Handle(context.Background(), id, cmd); err != nil {
			t.Fatalf("Handle(%s) error = %v", cmd.Name(), err)
		}
	}
	return id
}

func (p *pipeline) requestPublication(t *testing.T, id uuid.UUID) {
	t.Helper()
	if err := p.service.Handle(context.Background(), id, comment.RequestPublication{}); err != nil {
		t.Fatalf("Handle(request_publication) error = %v", err)
	}
}

func (p *pipeline) status(t *testing.T, id uuid.UUID) comment.Status {
	t.Helper()
	state, err := p.service.State(context.Background(), id)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	return state.Status()
}

func (p *pipeline) waitForStatus(t *testing.T, id uuid.UUID, want comment.Status) {
	t.Helper()
	deadline := time.Now().Add(pipelineTimeout)
	for {
		got := p.status(t, id)
		if got == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("status of %s = %s, want %s", id, got, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (p *pipeline) closeBus(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
	defer cancel()
	if err := p.bus.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v, want nil", err)
	}
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(pipelineTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPipeline_PublishesRequestedComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		comments int
	}{
		{name: "single comment", comments: 1},
		{name: "concurrent comments", comments: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newPipeline(t, memory.New(), 3, 0)

			ids := make([]uuid.UUID, tt.comments)
			for i := range ids {
				ids[i] = p.compose(t)
			}
			for _, id := range ids {
				p.requestPublication(t, id)
			}
			for _, id := range ids {
				p.waitForStatus(t, id, comment.StatusPublished)
			}
			p.closeBus(t)

			if got := p.assigner.Calls(); got != tt.comments {
				t.Errorf("assigner calls = %d, want %d", got, tt.comments)
			}
			if got := p.publisher.Calls(); got != tt.comments {
				t.Errorf("publisher calls = %d, want %d", got, tt.comments)
			}

			// Start through CommentPublished, each delivered once in commit order.
			for _, id := range ids {
				versions := p.audit.versions(id)
				if len(versions) != 9 {
					t.Fatalf("delivered %d events for %s, want 9: %v", len(versions), id, versions)
				}
				for i, v := range versions {
					if v != int64(i+1) {
						t.Errorf("event %d for %s has version %d, want %d", i, id, v, i+1)
					}
				}
			}
		})
	}
}

func TestPipeline_RedriveRecoversDroppedEvent(t *testing.T) {
	t.Parallel()

	// Two deliveries of PublicationRequested both fail, so the bus gives up.
	p := newPipeline(t, memory.New(), 2, 2)
	id := p.compose(t)
	p.requestPublication(t, id)

	waitUntil(t, "both failed deliveries", func() bool { return p.assigner.Calls() >= 2 })
	if got := p.status(t, id); got != comment.StatusBeingPublished {
		t.Fatalf("status after dropped event = %s, want %s", got, comment.StatusBeingPublished)
	}

	n, err := p.redriver().Redrive(context.Background(), 0)
	if err != nil {
		t.Fatalf("Redrive() error = %v, want nil", err)
	}
	if n != 1 {
		t.Errorf("Redrive() republished %d events, want 1", n)
	}

	p.waitForStatus(t, id, comment.StatusPublished)
	if got := p.assigner.Calls(); got != 3 {
		t.Errorf("assigner calls = %d, want 3", got)
	}
	if got := p.publisher.Calls(); got != 1 {
		t.Errorf("publisher calls = %d, want 1", got)
	}

	n, err = p.redriver().Redrive(context.Background(), 0)
	if err != nil || n != 0 {
		t.Errorf("Redrive() after publication = (%d, %v), want (0, nil)", n, err)
	}
}

func TestPipeline_CloseFinishesPublication(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, memory.New(), 3, 0)
	id := p.compose(t)
	p.requestPublication(t, id)

	// The reactors record IdentifierAssigned and CommentPublished while the
	// bus is draining. Both must still be delivered.
	p.closeBus(t)

	if got := p.status(t, id); got != comment.StatusPublished {
		t.Fatalf("status after Close = %s, want %s", got, comment.StatusPublished)
	}
	if got := p.publisher.Calls(); got != 1 {
		t.Errorf("publisher calls = %d, want 1", got)
	}
}

func TestPipeline_RestartResumesStalledComments(t *testing.T) {
	t.Parallel()

	store := memory.New()
	recordedAt := time.Now().Add(-time.Hour)
	waitingForIdentifier := uuid.New()
	waitingForPublication := uuid.New()

	composed := []comment.Event{
		comment.Started{AuthorID: testAuthor, PrereviewID: testPrereview},
		comment.BodyEntered{Body: testContent().Body},
		comment.PersonaChosen{Persona: comment.PersonaPseudonym},
		comment.CompetingInterestsDeclared{},
		comment.CodeOfConductAgreed{},
		comment.VerifiedEmailConfirmed{},
		comment.PublicationRequested{},
	}
	seed := func(id uuid.UUID, events ...comment.Event) {
		t.Helper()
		for _, evt := range history(id, events...) {
			evt.RecordedAt = recordedAt
			if err := store.Append(context.Background(), evt); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}
	}
	seed(waitingForIdentifier, composed...)
	seed(waitingForPublication, append(composed, comment.IdentifierAssigned{
		Identifier: testIdentifier,
		ExternalID: testExternalID,
	})...)

	// A fresh process over the journal the previous one left behind.
	p := newPipeline(t, store, 3, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.redriver().Run(ctx)
	}()

	p.waitForStatus(t, waitingForIdentifier, comment.StatusPublished)
	p.waitForStatus(t, waitingForPublication, comment.StatusPublished)

	cancel()
	select {
	case <-done:
	case <-time.After(pipelineTimeout):
		t.Fatal("Run() did not return after cancel")
	}

	if got := p.assigner.Calls(); got != 1 {
		t.Errorf("assigner calls = %d, want 1", got)
	}
	if got := p.publisher.Calls(); got != 2 {
		t.Errorf("publisher calls = %d, want 2", got)
	}
}
