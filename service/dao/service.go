package dao

import (
	"context"
)

// Service is the minimal persistence contract shared by all entity stores.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// Conditional is implemented by stores that support atomic
// compare-on-status updates. UpdateIf persists t only when the stored copy
// currently carries expectedStatus; otherwise it returns ErrConflict and
// leaves the stored copy untouched. Concurrent service instances rely on
// this to serialise state transitions without in-process locks.
type Conditional[K comparable, T any] interface {
	UpdateIf(ctx context.Context, t *T, expectedStatus string) error
}
