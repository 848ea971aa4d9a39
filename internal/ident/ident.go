// Package ident reserves unique, human-stable names for graph elements.
//
// A Registry tracks reserved names per scope. Node names are reserved in the
// graph's scope and Data names in their owning node's scope, so output names
// nest under node names without colliding across nodes.
package ident

import "fmt"

// Registry is a per-graph name reservation table. It is not safe for
// concurrent use; graph construction is single-threaded by contract.
type Registry struct {
	scopes map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{scopes: make(map[string]map[string]struct{})}
}

// Reserve returns the requested name if it is unused within scope, otherwise
// the first unused deterministically suffixed variant (name_1, name_2, ...).
// The returned name is recorded as taken.
func (r *Registry) Reserve(scope, name string) string {
	taken, ok := r.scopes[scope]
	if !ok {
		taken = make(map[string]struct{})
		r.scopes[scope] = taken
	}

	candidate := name
	for i := 1; ; i++ {
		if _, exists := taken[candidate]; !exists {
			break
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}

	taken[candidate] = struct{}{}
	return candidate
}

// Reserved reports whether name is already taken within scope.
func (r *Registry) Reserved(scope, name string) bool {
	taken, ok := r.scopes[scope]
	if !ok {
		return false
	}
	_, exists := taken[name]
	return exists
}
