package eventbus

import (
	"sync"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// queue is an unbounded FIFO with a single consumer. Publishing never
// blocks, so a handler may publish to its own subscriber without deadlock.
type queue struct {
	mu     sync.Mutex
	items  []comment.RecordedEvent
	signal chan struct{}
	closed bool
}

func newQueue(capacity int) *queue {
	return &queue{
		items:  make([]comment.RecordedEvent, 0, capacity),
		signal: make(chan struct{}, 1),
	}
}

// push appends evt and returns the resulting backlog.
func (q *queue) push(evt comment.RecordedEvent) int {
	q.mu.Lock()
	q.items = append(q.items, evt)
	n := len(q.items)
	q.mu.Unlock()

	q.wake()
	return n
}

// close lets the consumer drain what is queued and then stop.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

// pop blocks until an event is available. It returns false once the queue is
// closed and empty.
func (q *queue) pop() (comment.RecordedEvent, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			evt := q.items[0]
			q.items[0] = comment.RecordedEvent{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return evt, true
		}
		if q.closed {
			q.mu.Unlock()
			return comment.RecordedEvent{}, false
		}
		q.mu.Unlock()
		<-q.signal
	}
}

func (q *queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
