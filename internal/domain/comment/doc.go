// Package comment models the lifecycle of a review comment as an event-sourced
// aggregate.
//
// An author composes a comment through a sequence of commands. Decide checks
// each command against the current State and either returns the Event that
// records it, returns nil for a command whose effect already holds, or rejects
// it with one of the Rejection sentinels. Evolve folds events back into State.
// Both functions are pure; persistence and side effects live behind the ports.
//
//	NotStarted -> InProgress -> ReadyForPublishing -> BeingPublished -> Published
package comment
