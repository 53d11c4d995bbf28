// Package executor implements the trusted execution path between an
// authorized command and its business side effect. The service resolves the
// command's policy, enforces permissions and monetary circuit breakers,
// routes approval-level commands to the governance workflow via the
// ApprovalRequiredError signal, invokes the injected side-effect handler for
// the rest, and records every outcome in the append-mostly audit store. It
// also authorizes bounded-time compensating rollbacks.
package executor
