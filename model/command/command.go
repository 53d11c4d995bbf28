// Package command defines the static policy metadata attached to every
// executable command type.
package command

import (
	"fmt"

	"github.com/opsfabric/warden/model/money"
)

// Level classifies how a command is routed once permission checks pass.
type Level string

const (
	// LevelNotify runs immediately and emits a fire-and-forget event.
	LevelNotify Level = "notify"
	// LevelApprove requires human sign-off before any side effect runs.
	LevelApprove Level = "approve"
	// LevelAuto runs immediately with no notification.
	LevelAuto Level = "auto"
)

// Valid reports whether l is one of the recognised levels.
func (l Level) Valid() bool {
	switch l {
	case LevelNotify, LevelApprove, LevelAuto:
		return true
	}
	return false
}

// Definition describes the policy for a single command type. Definitions are
// immutable once loaded; adding or changing a command requires a config
// reload, which keeps the policy surface auditable.
type Definition struct {
	Type          string   `json:"type" yaml:"type"`
	DisplayName   string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Level         Level    `json:"level" yaml:"level"`
	AllowedRoles  []string `json:"allowedRoles,omitempty" yaml:"allowedRoles,omitempty"`
	ApproverRoles []string `json:"approverRoles,omitempty" yaml:"approverRoles,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`

	// AmountBreaker, when set, forces any execution whose payload amount
	// exceeds it into approval routing regardless of Level.
	AmountBreaker *money.Amount `json:"amountBreaker,omitempty" yaml:"amountBreaker,omitempty"`
}

// Validate checks structural invariants of a definition.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("command: nil definition")
	}
	if d.Type == "" {
		return fmt.Errorf("command: definition missing type")
	}
	if !d.Level.Valid() {
		return fmt.Errorf("command: %s has invalid level %q", d.Type, d.Level)
	}
	return nil
}

// AllowsRole reports whether role is listed in AllowedRoles.
func (d *Definition) AllowsRole(role string) bool {
	return contains(d.AllowedRoles, role)
}

// ApprovedByRole reports whether role is listed in ApproverRoles.
func (d *Definition) ApprovedByRole(role string) bool {
	return contains(d.ApproverRoles, role)
}

func contains(roles []string, role string) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
