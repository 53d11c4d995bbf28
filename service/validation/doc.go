// Package validation implements the composable business-rule engine applied
// to decisions before execution. Rule failures are data, not errors - a
// rejected decision is an expected business outcome, so every rule returns a
// Result and the engine aggregates them into a deterministic classification.
package validation
