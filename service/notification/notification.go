// Package notification defines the best-effort collaborator used to alert
// approvers about pending decisions. Delivery failures are logged by callers
// and never block or roll back the state transition that produced the
// notification.
package notification

import "context"

// Card is the structured message presented to approvers.
type Card struct {
	Title        string        `json:"title"`
	Store        string        `json:"store,omitempty"`
	Confidence   float64       `json:"confidence"`
	Suggestion   interface{}   `json:"suggestion,omitempty"`
	Reasoning    string        `json:"reasoning,omitempty"`
	Alternatives []interface{} `json:"alternatives,omitempty"`
	Actions      []string      `json:"actions,omitempty"`
}

// Sender delivers cards to recipients. Implementations wrap chat, push or
// e-mail transports; the core never depends on a concrete one.
type Sender interface {
	Send(ctx context.Context, card *Card, recipients []string) error
}

// Nop is a Sender that discards every card.
type Nop struct{}

// Send implements Sender.
func (Nop) Send(context.Context, *Card, []string) error { return nil }
