package health_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/review-comments/internal/platform/health"
	"github.com/jsamuelsen11/review-comments/mocks"
)

func checker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()
	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return(name)
	c.EXPECT().HealthCheck(mock.Anything).Return(err).Maybe()
	return c
}

// slowCheck answers only when its context ends.
type slowCheck struct{ name string }

func (s slowCheck) Name() string { return s.name }

func (s slowCheck) HealthCheck(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(t.Context())
	if results == nil || len(results) != 0 {
		t.Errorf("CheckAll() = %v, want an empty non-nil map", results)
	}
}

func TestCheckAll_ReportsEachCheck(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")

	r := health.New()
	r.Register(checker(t, "event-store", nil))
	r.Register(checker(t, "event-bus", nil))
	r.Register(checker(t, "deposition-api", refused))

	results := r.CheckAll(t.Context())

	want := map[string]error{"event-store": nil, "event-bus": nil, "deposition-api": refused}
	if len(results) != len(want) {
		t.Fatalf("CheckAll() = %v, want %d results", results, len(want))
	}
	for name, wantErr := range want {
		got, ok := results[name]
		if !ok {
			t.Errorf("missing result for %q", name)
			continue
		}
		if !errors.Is(got, wantErr) {
			t.Errorf("%s = %v, want %v", name, got, wantErr)
		}
	}
}

func TestRegister_SameNameReplaces(t *testing.T) {
	t.Parallel()

	down := errors.New("directory down")

	r := health.New()
	r.Register(checker(t, "directory-api", nil))
	r.Register(checker(t, "event-store", nil))
	r.Register(checker(t, "directory-api", down))

	if got, want := r.Names(), []string{"directory-api", "event-store"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := r.CheckAll(t.Context())["directory-api"]; !errors.Is(got, down) {
		t.Errorf("directory-api = %v, want the replacement's result %v", got, down)
	}
}

func TestCheckAll_PassesCallerContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return("notifier")
	c.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() != nil
	})).Return(context.Canceled)

	r := health.New()
	r.Register(c)

	if got := r.CheckAll(ctx)["notifier"]; !errors.Is(got, context.Canceled) {
		t.Errorf("notifier = %v, want context.Canceled", got)
	}
}

func TestCheckAll_CheckTimeout(t *testing.T) {
	t.Parallel()

	r := health.New(health.WithCheckTimeout(20 * time.Millisecond))
	r.Register(slowCheck{name: "deposition-api"})

	start := time.Now()
	err := r.CheckAll(t.Context())["deposition-api"]

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("deposition-api = %v, want context.DeadlineExceeded", err)
	}
	if !strings.Contains(err.Error(), "no answer within 20ms") {
		t.Errorf("error = %q, want the timeout named", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("CheckAll took %s, want it bounded by the check timeout", elapsed)
	}
}

func TestCheckAll_NoTimeoutByDefault(t *testing.T) {
	t.Parallel()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return("event-store")
	c.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return !ok
	})).Return(nil)

	r := health.New()
	r.Register(c)

	if got := r.CheckAll(context.Background())["event-store"]; got != nil {
		t.Errorf("event-store = %v, want nil", got)
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				r.Register(okCheck{name: "check"})
				return
			}
			r.CheckAll(t.Context())
			r.Names()
		}()
	}
	wg.Wait()

	if got := r.Names(); len(got) != 1 {
		t.Errorf("Names() = %v, want one entry for the shared name", got)
	}
}

type okCheck struct{ name string }

func (s okCheck) Name() string                        { return s.name }
func (s okCheck) HealthCheck(_ context.Context) error { return nil }
