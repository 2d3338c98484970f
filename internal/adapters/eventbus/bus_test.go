package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/eventbus"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
)

func fastOptions() eventbus.Options {
	return eventbus.Options{
		BufferSize:      4,
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
	}
}

func newBus(t *testing.T, opts eventbus.Options) *eventbus.Bus {
	t.Helper()
	bus := eventbus.New(opts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = bus.Close(ctx)
	})
	return bus
}

func recorded(version int64, evt comment.Event) comment.RecordedEvent {
	return comment.RecordedEvent{ID: uuid.New(), CommentID: uuid.New(), Version: version, Event: evt}
}

// collector gathers delivered events and signals when want have arrived.
type collector struct {
	mu     sync.Mutex
	events []comment.RecordedEvent
	want   int
	done   chan struct{}
}

func newCollector(want int) *collector {
	return &collector{want: want, done: make(chan struct{})}
}

func (c *collector) handle(_ context.Context, evt comment.RecordedEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	if len(c.events) == c.want {
		close(c.done)
	}
	return nil
}

func (c *collector) wait(t *testing.T) []comment.RecordedEvent {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d events", c.want)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]comment.RecordedEvent(nil), c.events...)
}

func TestBus_DeliversInOrderFilteredByType(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	requested := newCollector(3)
	everything := newCollector(6)
	bus.Subscribe("requested", requested.handle, comment.TypePublicationRequested)
	bus.Subscribe("everything", everything.handle)

	ctx := context.Background()
	for i := range 3 {
		if err := bus.Publish(ctx, recorded(int64(2*i+1), comment.PublicationRequested{})); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if err := bus.Publish(ctx, recorded(int64(2*i+2), comment.CodeOfConductAgreed{})); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	got := requested.wait(t)
	for i, evt := range got {
		if evt.Event.Type() != comment.TypePublicationRequested {
			t.Errorf("requested[%d] type = %s", i, evt.Event.Type())
		}
		if want := int64(2*i + 1); evt.Version != want {
			t.Errorf("requested[%d] version = %d, want %d", i, evt.Version, want)
		}
	}

	all := everything.wait(t)
	for i, evt := range all {
		if evt.Version != int64(i+1) {
			t.Errorf("everything[%d] version = %d, want %d", i, evt.Version, i+1)
		}
	}
}

func TestBus_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	var attempts atomic.Int32
	done := make(chan struct{})
	bus.Subscribe("flaky", func(context.Context, comment.RecordedEvent) error {
		if attempts.Add(1) < 3 {
			return errors.New("deposition API unavailable")
		}
		close(done)
		return nil
	})

	if err := bus.Publish(context.Background(), recorded(1, comment.PublicationRequested{})); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never succeeded")
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
}

func TestBus_DropsAfterMaxAttemptsAndContinues(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	var failing atomic.Int32
	next := newCollector(1)
	bus.Subscribe("reactor", func(ctx context.Context, evt comment.RecordedEvent) error {
		if evt.Version == 1 {
			failing.Add(1)
			return errors.New("always fails")
		}
		return next.handle(ctx, evt)
	})

	ctx := context.Background()
	_ = bus.Publish(ctx, recorded(1, comment.PublicationRequested{}))
	_ = bus.Publish(ctx, recorded(2, comment.PublicationRequested{}))

	if got := next.wait(t); got[0].Version != 2 {
		t.Errorf("delivered version = %d, want 2", got[0].Version)
	}
	if n := failing.Load(); n != 3 {
		t.Errorf("failing attempts = %d, want 3", n)
	}
}

func TestBus_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	var panics atomic.Int32
	next := newCollector(1)
	bus.Subscribe("reactor", func(ctx context.Context, evt comment.RecordedEvent) error {
		if evt.Version == 1 {
			panics.Add(1)
			panic("nil map")
		}
		return next.handle(ctx, evt)
	})

	ctx := context.Background()
	_ = bus.Publish(ctx, recorded(1, comment.CommentPublished{}))
	_ = bus.Publish(ctx, recorded(2, comment.CommentPublished{}))

	next.wait(t)
	if n := panics.Load(); n != 1 {
		t.Errorf("panicking handler ran %d times, want 1 (panics are not retried)", n)
	}
}

func TestBus_PropagatesCorrelationID(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	got := make(chan string, 1)
	bus.Subscribe("reactor", func(ctx context.Context, _ comment.RecordedEvent) error {
		got <- reqctx.CorrelationID(ctx)
		return nil
	})

	evt := recorded(1, comment.PublicationRequested{})
	evt.CorrelationID = "corr-42"
	_ = bus.Publish(context.Background(), evt)

	select {
	case id := <-got:
		if id != "corr-42" {
			t.Errorf("correlation id = %q, want %q", id, "corr-42")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestBus_HandlerContextCarriesDeliveryLogger(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	opts := fastOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	bus := newBus(t, opts)

	done := make(chan struct{})
	bus.Subscribe("notify_published", func(ctx context.Context, _ comment.RecordedEvent) error {
		logging.FromContext(ctx).Info("handling")
		close(done)
		return nil
	})

	_ = bus.Publish(context.Background(), recorded(1, comment.PublicationRequested{}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}

	out := buf.String()
	for _, want := range []string{"subscriber=notify_published", "event_type=" + comment.PublicationRequested{}.Type(), "version=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("handler log missing %q, got: %s", want, out)
		}
	}
}

// syncBuffer is a bytes.Buffer safe for the bus goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestBus_HandlerMayPublishToItself(t *testing.T) {
	t.Parallel()

	opts := fastOptions()
	opts.BufferSize = 1
	bus := newBus(t, opts)

	chain := newCollector(5)
	bus.Subscribe("chain", func(ctx context.Context, evt comment.RecordedEvent) error {
		if err := chain.handle(ctx, evt); err != nil {
			return err
		}
		if evt.Version < 5 {
			return bus.Publish(ctx, recorded(evt.Version+1, comment.PublicationRequested{}))
		}
		return nil
	})

	_ = bus.Publish(context.Background(), recorded(1, comment.PublicationRequested{}))
	if got := chain.wait(t); len(got) != 5 {
		t.Errorf("delivered %d events, want 5", len(got))
	}
}

func TestBus_CloseDrainsAndRejects(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(fastOptions())
	var delivered atomic.Int32
	bus.Subscribe("slow", func(context.Context, comment.RecordedEvent) error {
		time.Sleep(5 * time.Millisecond)
		delivered.Add(1)
		return nil
	})

	ctx := context.Background()
	for i := range 5 {
		_ = bus.Publish(ctx, recorded(int64(i+1), comment.BodyEntered{Body: "b"}))
	}

	closeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := bus.Close(closeCtx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := delivered.Load(); n != 5 {
		t.Errorf("delivered = %d, want 5 (Close must drain)", n)
	}

	if err := bus.Publish(ctx, recorded(6, comment.BodyEntered{Body: "b"})); !errors.Is(err, eventbus.ErrClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrClosed", err)
	}
	if err := bus.HealthCheck(ctx); !errors.Is(err, eventbus.ErrClosed) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrClosed", err)
	}
	if err := bus.Close(ctx); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestBus_CloseDeliversFollowUpEvents(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(fastOptions())
	var delivered atomic.Int32
	bus.Subscribe("chain", func(ctx context.Context, evt comment.RecordedEvent) error {
		time.Sleep(2 * time.Millisecond)
		delivered.Add(1)
		if evt.Version < 4 {
			return bus.Publish(ctx, recorded(evt.Version+1, comment.IdentifierAssigned{}))
		}
		return nil
	})

	ctx := context.Background()
	if err := bus.Publish(ctx, recorded(1, comment.PublicationRequested{})); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	closeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := bus.Close(closeCtx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := delivered.Load(); n != 4 {
		t.Errorf("delivered = %d, want 4: events published by handlers during Close are part of the drain", n)
	}
}

func TestBus_CloseTimesOut(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(fastOptions())
	release := make(chan struct{})
	started := make(chan struct{})
	bus.Subscribe("stuck", func(context.Context, comment.RecordedEvent) error {
		close(started)
		<-release
		return nil
	})
	_ = bus.Publish(context.Background(), recorded(1, comment.PublicationRequested{}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := bus.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close() error = %v, want DeadlineExceeded", err)
	}
	close(release)
}

func TestBus_PublishRequiresEvent(t *testing.T) {
	t.Parallel()

	bus := newBus(t, fastOptions())
	if err := bus.Publish(context.Background(), comment.RecordedEvent{}); err == nil {
		t.Error("Publish() of an empty record error = nil, want error")
	}
	if bus.Name() != "event-bus" {
		t.Errorf("Name() = %q, want %q", bus.Name(), "event-bus")
	}
}
