// Package policy exposes the static command policy registry: the per-command
// execution level, role sets and monetary circuit breaker thresholds, plus
// the centralised super-admin bypass set. The registry is read-only after
// startup and therefore safe for unsynchronised concurrent reads.
package policy
