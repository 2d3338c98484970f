package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// idLocks serializes work per comment id. Entries are reference counted and
// dropped once the last holder or waiter is gone.
type idLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*idLock
}

type idLock struct {
	sem  chan struct{}
	refs int
}

func newIDLocks() *idLocks {
	return &idLocks{locks: make(map[uuid.UUID]*idLock)}
}

// Lock blocks until the lock for id is held or ctx is done. The returned
// function releases the lock and must be called exactly once.
func (l *idLocks) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &idLock{sem: make(chan struct{}, 1)}
		l.locks[id] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
		return func() {
			<-lock.sem
			l.release(id, lock)
		}, nil
	case <-ctx.Done():
		l.release(id, lock)
		return nil, ctx.Err()
	}
}

func (l *idLocks) release(id uuid.UUID, lock *idLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, id)
	}
}

// held returns the number of ids with a holder or waiter.
func (l *idLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
