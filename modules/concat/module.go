// Package concat provides feature-wise concatenation of two or more batches
// with matching sample counts.
package concat

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
	r.RegisterProcessor("concat", func(params map[string]cty.Value) (processor.Processor, error) {
		if len(params) != 0 {
			return nil, fmt.Errorf("concat takes no parameters")
		}
		return &Concat{}, nil
	})
}

// Concat joins rank-1 feature vectors end to end, sample by sample.
type Concat struct{}

// ComputeOutputShapes implements processor.Processor. All inputs must be
// rank-1; the output width is the sum of input widths, wildcard if any input
// width is unknown.
func (p *Concat) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	if len(in) < 2 {
		return nil, fmt.Errorf("concat expects at least 2 inputs, got %d", len(in))
	}
	width := 0
	for i, s := range in {
		if len(s) != 1 {
			return nil, fmt.Errorf("concat expects rank-1 inputs, input %d has shape %s", i, s)
		}
		if s[0] == processor.WildcardDim || width == processor.WildcardDim {
			width = processor.WildcardDim
			continue
		}
		width += s[0]
	}
	return []processor.Shape{{width}}, nil
}

// Transform implements processor.Processor.
func (p *Concat) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	batches := make([][]cty.Value, len(in))
	samples := -1
	for i, v := range in {
		batches[i] = v.AsValueSlice()
		if samples == -1 {
			samples = len(batches[i])
		} else if len(batches[i]) != samples {
			return nil, fmt.Errorf("sample count mismatch: input %d has %d samples, want %d", i, len(batches[i]), samples)
		}
	}

	if samples <= 0 {
		return []cty.Value{cty.ListValEmpty(cty.List(cty.Number))}, nil
	}

	rows := make([]cty.Value, samples)
	for s := 0; s < samples; s++ {
		var row []cty.Value
		for _, b := range batches {
			row = append(row, b[s].AsValueSlice()...)
		}
		rows[s] = cty.ListVal(row)
	}
	return []cty.Value{cty.ListVal(rows)}, nil
}

// Params implements processor.Processor.
func (p *Concat) Params() map[string]cty.Value { return map[string]cty.Value{} }

// SetParams implements processor.Processor.
func (p *Concat) SetParams(params map[string]cty.Value) error {
	if len(params) != 0 {
		return fmt.Errorf("concat has no parameters")
	}
	return nil
}
