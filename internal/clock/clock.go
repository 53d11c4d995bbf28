// Package clock centralises time acquisition so that time-sensitive logic,
// such as the rollback window check, can be driven deterministically in
// tests.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
