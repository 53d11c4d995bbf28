package messaging

import (
	"context"
)

// Queue represents an abstract message queue for any payload type. It is the
// fan-out primitive used for execution audit events, decision lifecycle
// events and queue-backed notification delivery. Publishing is
// fire-and-forget relative to the state transition that produced the event.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
