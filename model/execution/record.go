// Package execution defines the audit model for command executions. Records
// are append-mostly: once inserted, the only permitted mutation is the
// rollback linkage written when a completed execution is compensated.
package execution

import (
	"time"

	"github.com/opsfabric/warden/model/command"
	"github.com/opsfabric/warden/model/money"
)

// Status captures the lifecycle of an execution record.
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusPendingApproval Status = "pending_approval"
	StatusRolledBack      Status = "rolled_back"
	StatusFailed          Status = "failed"
)

// Actor identifies the principal requesting an execution or rollback.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Record is a single audit row. A fresh ID is generated per call; the
// executor never deduplicates by payload content, so callers that need
// idempotence must enforce it themselves.
type Record struct {
	ID          string                 `json:"id"`
	CommandType string                 `json:"commandType"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	ActorID     string                 `json:"actorId"`
	ActorRole   string                 `json:"actorRole"`
	StoreID     string                 `json:"storeId,omitempty"`
	BrandID     string                 `json:"brandId,omitempty"`
	Status      Status                 `json:"status"`
	Level       command.Level          `json:"level"`
	Amount      *money.Amount          `json:"amount,omitempty"`
	Result      interface{}            `json:"result,omitempty"`

	// Rollback linkage - the single permitted post-insert mutation.
	RollbackID   string     `json:"rollbackId,omitempty"`
	RolledBackBy string     `json:"rolledBackBy,omitempty"`
	RolledBackAt *time.Time `json:"rolledBackAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Result is returned by a successful (or pending) execute call.
type Result struct {
	ExecutionID string        `json:"executionId"`
	CommandType string        `json:"commandType"`
	Status      Status        `json:"status"`
	Level       command.Level `json:"level"`
	Result      interface{}   `json:"result,omitempty"`
}

// RollbackResult documents an authorized compensating rollback.
type RollbackResult struct {
	RollbackID   string    `json:"rollbackId"`
	ExecutionID  string    `json:"executionId"`
	CommandType  string    `json:"commandType"`
	RolledBackBy string    `json:"rolledBackBy"`
	RolledBackAt time.Time `json:"rolledBackAt"`
}

// Event topics published on the execution event queue.
const (
	TopicCompleted  = "execution.completed"
	TopicPending    = "execution.pending"
	TopicFailed     = "execution.failed"
	TopicRolledBack = "execution.rolledback"
)

// Event is the envelope published for every persisted execution record.
type Event struct {
	Topic   string            `json:"topic"`
	Record  *Record           `json:"record"`
	Headers map[string]string `json:"headers,omitempty"`
}
