package acl

import (
	"fmt"
)

// breakerHealth reports a downstream's availability from its circuit breaker
// state; no network call is made.
//
// State mapping:
//   - "closed"    -- downstream is operating normally; returns nil.
//   - "half-open" -- circuit breaker is probing recovery; returns a
//     descriptive error indicating degraded state.
//   - "open"      -- downstream is unavailable and the breaker is rejecting
//     requests; returns a descriptive error indicating failure.
//
// This reports downstream status, not service readiness. Commands keep being
// recorded while a downstream fails; the reactors surface the port errors.
func breakerHealth(name, state string) error {
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", name)
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open)", name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q", name, state)
	}
}
