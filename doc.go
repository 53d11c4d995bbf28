// Package warden is the trust boundary between autonomous business
// decisions and their real-world execution. It decides whether an action may
// run immediately, must be escalated to a human, or must be rejected
// outright; keeps an immutable record of every decision and execution;
// allows a bounded-time compensating rollback; and lets callers plug in
// business-specific validation rules without touching the core.
//
// The engine ships with pluggable service layers:
//
//   - policy     – static command policy registry with super-admin bypass
//   - executor   – trusted execution with circuit breakers, audit and rollback
//   - validation – composable business rules plus statistical anomaly detection
//   - governance – human-in-the-loop decision workflow with trust scoring
//
// Warden is designed to be embedded in host applications. End-users
// typically interact via the high-level Service façade exposed by the root
// package:
//
//	registry, _ := policy.New(definitions)
//	svc, _ := warden.New(
//		warden.WithRegistry(registry),
//		warden.WithHandlers(handlers),
//	)
//	result, err := svc.Execute(ctx, "stock_alert", payload, actor)
//
// For more details see the README and individual sub-packages.
package warden
