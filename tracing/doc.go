// Package tracing is a thin wrapper around OpenTelemetry so the rest of the
// code base can start and end spans without importing the upstream packages
// directly. Applications that never call Init get no-op spans at zero cost.
package tracing
