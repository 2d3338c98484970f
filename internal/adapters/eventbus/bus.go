// Package eventbus provides the in-process publish/subscribe channel between
// the command handler and the reactors. Each subscriber owns an ordered queue
// drained by one goroutine, so events for a subscriber are handled in publish
// order. Failed handlers are retried with exponential backoff before the
// event is dropped and logged. Dropped events stay in the journal, where the
// application's redrive sweep finds them again.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
	"github.com/jsamuelsen11/review-comments/internal/platform/reqctx"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

var (
	_ ports.EventPublisher  = (*Bus)(nil)
	_ ports.EventSubscriber = (*Bus)(nil)
	_ ports.HealthChecker   = (*Bus)(nil)
)

// ErrClosed is returned by Publish after Close has been called.
var ErrClosed = errors.New("event bus is closed")

// Options configures delivery.
type Options struct {
	// BufferSize is the initial queue capacity of each subscriber and the
	// backlog above which publishing logs a warning.
	BufferSize int
	// MaxAttempts bounds deliveries of one event to one subscriber.
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = 64
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 100 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 5 * time.Second
	}
	if o.Multiplier < 1 {
		o.Multiplier = 2
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

type subscriber struct {
	name    string
	handler ports.EventHandler
	types   []string
	queue   *queue
}

func (s *subscriber) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// Bus delivers published events to subscribers at least once.
type Bus struct {
	opts Options

	mu          sync.RWMutex
	subscribers []*subscriber
	draining    bool
	closed      bool

	// pending counts queued and in-flight deliveries. idle is closed when it
	// drops to zero during a drain.
	pendingMu sync.Mutex
	pending   int
	idle      chan struct{}

	wg sync.WaitGroup
	// abort cancels in-flight redelivery waits when Close runs out of time.
	abortCtx context.Context
	abort    context.CancelFunc
}

// New creates a Bus.
func New(opts Options) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		opts:     opts.withDefaults(),
		abortCtx: ctx,
		abort:    cancel,
	}
}

// Subscribe registers handler under name and starts its delivery goroutine.
// No event types means every event. Subscribing after Close is ignored.
func (b *Bus) Subscribe(name string, handler ports.EventHandler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.draining {
		b.opts.Logger.Warn("subscription after close ignored", slog.String("subscriber", name))
		return
	}

	sub := &subscriber{
		name:    name,
		handler: handler,
		types:   slices.Clone(eventTypes),
		queue:   newQueue(b.opts.BufferSize),
	}
	b.subscribers = append(b.subscribers, sub)

	b.wg.Add(1)
	go b.consume(sub)
}

// Publish queues evt for every interested subscriber. It does not wait for
// delivery. Events published by handlers while Close is draining are still
// delivered.
func (b *Bus) Publish(ctx context.Context, evt comment.RecordedEvent) error {
	if evt.Event == nil {
		return errors.New("event is required")
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	eventType := evt.Event.Type()
	for _, sub := range b.subscribers {
		if !sub.wants(eventType) {
			continue
		}
		b.track(1)
		if backlog := sub.queue.push(evt); backlog > b.opts.BufferSize {
			b.opts.Logger.WarnContext(ctx, "subscriber falling behind",
				slog.String("subscriber", sub.name),
				slog.Int("backlog", backlog),
			)
		}
	}
	return nil
}

// Close waits until every queued delivery has finished, including those of
// events published by handlers in the meantime, and then stops the
// subscribers. Publish fails with ErrClosed afterwards. When ctx ends first,
// pending redeliveries are abandoned and the context error is returned.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.draining {
		b.mu.Unlock()
		return nil
	}
	b.draining = true
	b.mu.Unlock()

	select {
	case <-b.drained():
	case <-ctx.Done():
		b.abort()
		b.stop()
		return fmt.Errorf("draining event bus: %w", ctx.Err())
	}
	b.stop()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	defer b.abort()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("draining event bus: %w", ctx.Err())
	}
}

// stop rejects further events and lets each consumer exit once its queue is
// empty.
func (b *Bus) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for _, sub := range b.subscribers {
		sub.queue.close()
	}
}

// drained returns a channel that is closed once no delivery is pending.
func (b *Bus) drained() <-chan struct{} {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	if b.idle == nil {
		b.idle = make(chan struct{})
	}
	if b.pending == 0 {
		close(b.idle)
	}
	return b.idle
}

func (b *Bus) track(delta int) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	b.pending += delta
	if b.pending == 0 && b.idle != nil {
		select {
		case <-b.idle:
		default:
			close(b.idle)
		}
	}
}

// Name implements ports.HealthChecker.
func (b *Bus) Name() string {
	return "event-bus"
}

// HealthCheck fails once Close has been called.
func (b *Bus) HealthCheck(context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.draining {
		return ErrClosed
	}
	return nil
}

func (b *Bus) consume(sub *subscriber) {
	defer b.wg.Done()
	for {
		evt, ok := sub.queue.pop()
		if !ok {
			return
		}
		b.deliver(sub, evt)
		b.track(-1)
	}
}

// deliver hands evt to sub until it succeeds or the attempts run out.
func (b *Bus) deliver(sub *subscriber, evt comment.RecordedEvent) {
	ctx := b.abortCtx
	if evt.CorrelationID != "" {
		ctx = reqctx.WithCorrelationID(ctx, evt.CorrelationID)
	}
	eventType := evt.Event.Type()
	ctx, logger := logging.WithAttrs(logging.WithLogger(ctx, b.opts.Logger),
		slog.String("subscriber", sub.name),
		slog.String("event_type", eventType),
		slog.String("comment_id", evt.CommentID.String()),
		slog.Int64("version", evt.Version),
	)

	attempt := 0
	op := func() error {
		attempt++
		return safeHandle(ctx, sub.handler, evt)
	}
	notify := func(err error, wait time.Duration) {
		logger.WarnContext(ctx, "delivery failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.Any("error", err),
		)
	}

	if err := backoff.RetryNotify(op, b.backOff(ctx), notify); err != nil {
		b.opts.Metrics.RecordDelivery(ctx, sub.name, eventType, telemetry.ResultError)
		logger.ErrorContext(ctx, "dropping event after failed deliveries, leaving it to the redrive sweep",
			slog.String("operation", "deliver"),
			slog.Int("attempts", attempt),
			slog.Any("error", err),
		)
		return
	}
	b.opts.Metrics.RecordDelivery(ctx, sub.name, eventType, telemetry.ResultSuccess)
}

func (b *Bus) backOff(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = b.opts.InitialInterval
	exp.MaxInterval = b.opts.MaxInterval
	exp.Multiplier = b.opts.Multiplier
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(b.opts.MaxAttempts-1)), ctx)
}

// safeHandle turns a handler panic into an error so one bad event cannot stop
// the subscriber's goroutine.
func safeHandle(ctx context.Context, handler ports.EventHandler, evt comment.RecordedEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = backoff.Permanent(fmt.Errorf("handler panic: %v", r))
		}
	}()
	return handler(ctx, evt)
}
