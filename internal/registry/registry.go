// Package registry maps processor type names, as used in pipeline
// definitions, to the Go factories that construct them. It is populated by
// modules at startup; registering the same type twice is a programmer error
// and panics immediately.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/processor"
)

// Factory constructs a processor instance from its hyperparameters.
type Factory func(params map[string]cty.Value) (processor.Processor, error)

// Module is implemented by every builtin processor package so the app can
// register them in one sweep.
type Module interface {
	Register(r *Registry)
}

// Registry holds the processor factories for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterProcessor binds a type name to a factory.
func (r *Registry) RegisterProcessor(name string, f Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("processor type '%s' already registered", name))
	}
	slog.Debug("Registering processor type.", "type", name)
	r.factories[name] = f
}

// NewProcessor constructs a processor of the named type.
func (r *Registry) NewProcessor(name string, params map[string]cty.Value) (processor.Processor, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor type '%s'", name)
	}
	proc, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("constructing processor of type '%s': %w", name, err)
	}
	return proc, nil
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
