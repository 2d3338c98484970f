// Package fanout applies one operation to many items on a fixed pool of
// workers. The verified email reactor uses it to refresh a batch of
// comments against the directory without flooding it.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Each calls fn for every item on at most workers goroutines and returns
// the errors aligned with items; a nil entry means the item succeeded.
// workers below 1 means 1.
//
// Once ctx is done, items not yet started get ctx.Err() and fn is not
// called for them. Calls in flight must watch ctx themselves.
func Each[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}
	workers = max(1, min(workers, len(items)))

	next := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = fn(ctx, items[i])
			}
		}()
	}

	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()

	return errs
}

// Join names each failed item in the joined error. It returns nil when
// every entry of errs is nil.
func Join[T any](items []T, errs []error) error {
	var failed []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fmt.Errorf("%v: %w", items[i], err))
		}
	}
	return errors.Join(failed...)
}
