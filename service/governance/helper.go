package governance

import (
	"context"
	"time"

	"github.com/opsfabric/warden/model/decision"
)

// Resolution is what an automatic resolver wants done with a pending
// decision. A nil Resolution leaves the decision pending.
type Resolution struct {
	Action   string // decision.ActionApprove, ActionModify or ActionReject
	Modified map[string]interface{}
	Feedback string
}

// ResolveFunc inspects a pending decision and returns the resolution to
// apply, or nil to skip.
type ResolveFunc func(record *decision.Record) *Resolution

// AutoResolver starts a goroutine that polls ListPending and applies fn to
// every pending decision. It returns stop() - call it (or cancel ctx) to
// exit. Intended for tests and unattended environments.
func AutoResolver(ctx context.Context, svc Service, fn ResolveFunc, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				pending, _ := svc.ListPending(ctx)
				for _, record := range pending {
					resolution := fn(record)
					if resolution == nil {
						continue
					}
					switch resolution.Action {
					case decision.ActionApprove:
						_, _ = svc.Approve(ctx, record.ID, "auto", resolution.Feedback)
					case decision.ActionModify:
						_, _ = svc.Modify(ctx, record.ID, "auto", resolution.Modified, resolution.Feedback)
					case decision.ActionReject:
						_, _ = svc.Reject(ctx, record.ID, "auto", resolution.Feedback)
					}
				}
			}
		}
	}()
	return func() { close(done) }
}

// AutoApprove automatically approves every pending decision.
func AutoApprove(ctx context.Context, svc Service, interval time.Duration) func() {
	return AutoResolver(ctx, svc,
		func(*decision.Record) *Resolution {
			return &Resolution{Action: decision.ActionApprove, Feedback: "auto-approved"}
		}, interval)
}

// AutoReject automatically rejects every pending decision with the given
// reason.
func AutoReject(ctx context.Context, svc Service, reason string, interval time.Duration) func() {
	return AutoResolver(ctx, svc,
		func(*decision.Record) *Resolution {
			return &Resolution{Action: decision.ActionReject, Feedback: reason}
		}, interval)
}
