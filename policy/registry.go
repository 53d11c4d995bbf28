package policy

import (
	"fmt"
	"sort"

	"github.com/opsfabric/warden/model/command"
)

// DefaultSuperAdminRoles is the bypass role set used when none is supplied.
var DefaultSuperAdminRoles = []string{"super_admin"}

// Registry is the static command policy table. It is built once at startup
// and never mutated afterwards; there is deliberately no Register method.
type Registry struct {
	definitions map[string]*command.Definition
	superAdmins map[string]bool
}

// Option customises registry construction.
type Option func(*Registry)

// WithSuperAdminRoles overrides the super-admin bypass role set. The set is
// kept inside the registry so that policy and bypass logic live in one
// place.
func WithSuperAdminRoles(roles ...string) Option {
	return func(r *Registry) {
		r.superAdmins = make(map[string]bool, len(roles))
		for _, role := range roles {
			r.superAdmins[role] = true
		}
	}
}

// New builds a registry from the supplied definitions. Duplicate command
// types and structurally invalid definitions fail construction.
func New(definitions []command.Definition, options ...Option) (*Registry, error) {
	ret := &Registry{definitions: make(map[string]*command.Definition, len(definitions))}
	for _, option := range options {
		option(ret)
	}
	if ret.superAdmins == nil {
		WithSuperAdminRoles(DefaultSuperAdminRoles...)(ret)
	}
	for i := range definitions {
		definition := definitions[i]
		if err := definition.Validate(); err != nil {
			return nil, err
		}
		if _, ok := ret.definitions[definition.Type]; ok {
			return nil, fmt.Errorf("policy: duplicate command %q", definition.Type)
		}
		ret.definitions[definition.Type] = &definition
	}
	return ret, nil
}

// Get resolves the definition for a command type.
func (r *Registry) Get(commandType string) (*command.Definition, error) {
	definition, ok := r.definitions[commandType]
	if !ok {
		return nil, &UnknownCommandError{CommandType: commandType}
	}
	return definition, nil
}

// Has reports whether a command type is registered.
func (r *Registry) Has(commandType string) bool {
	_, ok := r.definitions[commandType]
	return ok
}

// IsSuperAdmin reports whether role belongs to the bypass set.
func (r *Registry) IsSuperAdmin(role string) bool {
	return r.superAdmins[role]
}

// CommandTypes returns the sorted list of registered command types.
func (r *Registry) CommandTypes() []string {
	out := make([]string, 0, len(r.definitions))
	for commandType := range r.definitions {
		out = append(out, commandType)
	}
	sort.Strings(out)
	return out
}
