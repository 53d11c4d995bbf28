package governance

import (
	"errors"
	"fmt"

	"github.com/opsfabric/warden/model/decision"
)

// ErrFeedbackRequired is returned by Reject when no feedback is supplied;
// rejected suggestions are training signal and must carry a reason.
var ErrFeedbackRequired = errors.New("governance: feedback is required")

// DecisionNotFoundError is returned when the referenced decision does not
// exist.
type DecisionNotFoundError struct {
	ID string
}

func (e *DecisionNotFoundError) Error() string {
	return fmt.Sprintf("decision %q not found", e.ID)
}

// AlreadyResolvedError signals an optimistic-concurrency conflict: the
// decision left the expected status before this caller's conditional update
// landed. Exactly one of the competing callers wins; the rest receive this
// error, never a silent double-execution.
type AlreadyResolvedError struct {
	ID     string
	Status decision.Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("decision %q already resolved (status %s)", e.ID, e.Status)
}

// UnknownDecisionTypeError is returned when no dispatcher is registered for
// a decision type. The dispatcher map is closed at startup, so adoption of
// an unregistered type fails fast before any state transition.
type UnknownDecisionTypeError struct {
	DecisionType string
}

func (e *UnknownDecisionTypeError) Error() string {
	return fmt.Sprintf("no dispatcher registered for decision type %q", e.DecisionType)
}
