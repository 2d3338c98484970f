// Package health runs the readiness checks of the comment service: the event
// journal, the bus and every downstream API client.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen11/review-comments/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds each check. Zero leaves only the caller's deadline.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.checkTimeout = d
	}
}

// Registry holds one checker per name. Checks run in the order their names
// were first registered.
type Registry struct {
	mu           sync.RWMutex
	order        []string
	byName       map[string]ports.HealthChecker
	checkTimeout time.Duration
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{byName: make(map[string]ports.HealthChecker)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker under its name, replacing any checker registered
// under the same name.
func (r *Registry) Register(checker ports.HealthChecker) {
	name := checker.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = checker
}

// Names lists the registered checks in run order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// CheckAll runs every check outside the lock and returns the results keyed
// by name. A nil value means healthy.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, 0, len(r.order))
	for _, name := range r.order {
		checkers = append(checkers, r.byName[name])
	}
	r.mu.RUnlock()

	results := make(map[string]error, len(checkers))
	for _, c := range checkers {
		results[c.Name()] = r.run(ctx, c)
	}
	return results
}

func (r *Registry) run(ctx context.Context, c ports.HealthChecker) error {
	if r.checkTimeout <= 0 {
		return c.HealthCheck(ctx)
	}

	checkCtx, cancel := context.WithTimeout(ctx, r.checkTimeout)
	defer cancel()

	err := c.HealthCheck(checkCtx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("no answer within %s: %w", r.checkTimeout, err)
	}
	return err
}
