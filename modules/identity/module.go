// Package identity provides the pass-through processor: one input batch in,
// the same batch out, shapes unchanged.
package identity

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/processor"
	"github.com/vk/flowgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the processor type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProcessor("identity", func(params map[string]cty.Value) (processor.Processor, error) {
		if len(params) != 0 {
			return nil, fmt.Errorf("identity takes no parameters")
		}
		return &Identity{}, nil
	})
}

// Identity forwards its single input unchanged.
type Identity struct{}

// ComputeOutputShapes implements processor.Processor.
func (p *Identity) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("identity expects exactly 1 input, got %d", len(in))
	}
	return []processor.Shape{in[0].Clone()}, nil
}

// Transform implements processor.Processor.
func (p *Identity) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	return []cty.Value{in[0]}, nil
}

// Params implements processor.Processor.
func (p *Identity) Params() map[string]cty.Value { return map[string]cty.Value{} }

// SetParams implements processor.Processor.
func (p *Identity) SetParams(params map[string]cty.Value) error {
	if len(params) != 0 {
		return fmt.Errorf("identity has no parameters")
	}
	return nil
}
