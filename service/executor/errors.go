package executor

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotRollbackable indicates the target execution is in a terminal or
	// pending state that cannot be compensated.
	ErrNotRollbackable = errors.New("executor: execution not rollbackable")

	// ErrAlreadyRolledBack indicates the execution was already compensated;
	// completed may transition to rolled_back exactly once.
	ErrAlreadyRolledBack = errors.New("executor: execution already rolled back")
)

// PermissionDeniedError is returned when the actor's role is neither in the
// command's allowed role set nor in the super-admin bypass set. No audit
// record is written for denied attempts.
type PermissionDeniedError struct {
	CommandType string
	Role        string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("role %q is not permitted to run %q", e.Role, e.CommandType)
}

// ApprovalRequiredError signals that the command was routed to human
// approval. It is expected control flow, not a fault: a pending_approval
// audit record has already been persisted and the caller routes the
// execution to the decision governance workflow.
type ApprovalRequiredError struct {
	ExecutionID string
	CommandType string
	Reason      string
}

func (e *ApprovalRequiredError) Error() string {
	return fmt.Sprintf("command %q requires approval: %s", e.CommandType, e.Reason)
}

// HandlerNotFoundError is returned when no side-effect handler is registered
// for an executable command type.
type HandlerNotFoundError struct {
	CommandType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for command %q", e.CommandType)
}

// ExecutionNotFoundError is returned by Rollback when the target execution
// record does not exist.
type ExecutionNotFoundError struct {
	ExecutionID string
}

func (e *ExecutionNotFoundError) Error() string {
	return fmt.Sprintf("execution %q not found", e.ExecutionID)
}

// RollbackWindowExpiredError is returned when the compensating rollback is
// requested after the configured window has elapsed.
type RollbackWindowExpiredError struct {
	ExecutionID string
	Elapsed     time.Duration
	Window      time.Duration
}

func (e *RollbackWindowExpiredError) Error() string {
	return fmt.Sprintf("rollback window of %s expired for execution %q (elapsed %s)", e.Window, e.ExecutionID, e.Elapsed)
}
