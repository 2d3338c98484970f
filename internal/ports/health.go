package ports

import "context"

// HealthChecker reports whether one dependency of the service can be used.
// The journal, the bus and each ACL client implement it.
type HealthChecker interface {
	// Name is the key the check is reported under, such as "event-store"
	// or "deposition-api".
	Name() string

	// HealthCheck returns nil when the dependency answers.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry backs GET /health/ready.
type HealthRegistry interface {
	// Register adds a check. A later check with the same name replaces the
	// earlier one.
	Register(checker HealthChecker)

	// CheckAll returns one result per registered name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
