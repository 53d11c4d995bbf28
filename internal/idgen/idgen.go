// Package idgen generates globally unique identifiers for execution and
// decision records.
package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers. It is a variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a fresh globally unique identifier.
func New() string { return NewFunc() }
