package store

import (
	"context"
	"sync"

	"github.com/opsfabric/warden/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// It keeps entities of type *T mapped by a comparable key K obtained from
// the supplied keySelector function.
//
// When a statusSelector is supplied the store also implements
// dao.Conditional: UpdateIf replaces the stored copy only when its current
// status matches the expected one, emulating the atomic
// "UPDATE ... WHERE status = ?" discipline of a SQL store under the same
// mutex that guards plain saves.
type MemoryStore[K comparable, T any] struct {
	mu             sync.RWMutex
	records        map[K]*T
	keySelector    func(*T) K
	statusSelector func(*T) string
	matcher        func(*T, *dao.Parameter) bool
}

// Option customises a MemoryStore.
type Option[K comparable, T any] func(*MemoryStore[K, T])

// WithStatusSelector enables conditional status updates.
func WithStatusSelector[K comparable, T any](selector func(*T) string) Option[K, T] {
	return func(s *MemoryStore[K, T]) { s.statusSelector = selector }
}

// WithMatcher installs the predicate used to evaluate List parameters.
// Without a matcher all parameters are ignored.
func WithMatcher[K comparable, T any](matcher func(*T, *dao.Parameter) bool) Option[K, T] {
	return func(s *MemoryStore[K, T]) { s.matcher = matcher }
}

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the entity key (usually the ID field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, options ...Option[K, T]) *MemoryStore[K, T] {
	ret := &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key or dao.ErrNotFound.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// List returns all stored records matching the supplied parameters.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
outer:
	for _, v := range s.records {
		if s.matcher != nil {
			for _, parameter := range parameters {
				if parameter == nil {
					continue
				}
				if !s.matcher(v, parameter) {
					continue outer
				}
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// UpdateIf replaces the stored copy of v only when its current status equals
// expectedStatus. A missing record yields dao.ErrNotFound, a status mismatch
// dao.ErrConflict.
func (s *MemoryStore[K, T]) UpdateIf(_ context.Context, v *T, expectedStatus string) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	if s.statusSelector == nil {
		return dao.ErrConflict
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.records[key]
	if !ok {
		return dao.ErrNotFound
	}
	if s.statusSelector(current) != expectedStatus {
		return dao.ErrConflict
	}
	s.records[key] = v
	return nil
}
