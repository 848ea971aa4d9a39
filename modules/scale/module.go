// Package scale provides a standardizing processor: Fit learns per-feature
// mean and standard deviation, Transform centers and scales each sample.
package scale

import (
	"context"
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/processor"
	"github.com/vk/flowgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the processor type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProcessor("scale", func(params map[string]cty.Value) (processor.Processor, error) {
		p := &Scaler{withMean: true, withStd: true}
		if err := p.SetParams(params); err != nil {
			return nil, err
		}
		return p, nil
	})
}

// Scaler standardizes rank-1 feature vectors using statistics learned in Fit.
type Scaler struct {
	withMean bool
	withStd  bool

	means []float64
	stds  []float64
}

// ComputeOutputShapes implements processor.Processor.
func (p *Scaler) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("scale expects exactly 1 input, got %d", len(in))
	}
	if len(in[0]) != 1 {
		return nil, fmt.Errorf("scale expects a rank-1 input, got shape %s", in[0])
	}
	return []processor.Shape{in[0].Clone()}, nil
}

// Fit implements processor.Fitter. Targets are ignored; scaling is
// unsupervised.
func (p *Scaler) Fit(_ context.Context, inputs, _ []cty.Value) error {
	rows := inputs[0].AsValueSlice()
	if len(rows) == 0 {
		return fmt.Errorf("scale cannot fit on an empty batch")
	}
	width := len(rows[0].AsValueSlice())
	p.means = make([]float64, width)
	p.stds = make([]float64, width)

	for _, row := range rows {
		vals := row.AsValueSlice()
		if len(vals) != width {
			return fmt.Errorf("ragged batch: row has %d features, want %d", len(vals), width)
		}
		for j, v := range vals {
			f, _ := v.AsBigFloat().Float64()
			p.means[j] += f
		}
	}
	for j := range p.means {
		p.means[j] /= float64(len(rows))
	}
	for _, row := range rows {
		for j, v := range row.AsValueSlice() {
			f, _ := v.AsBigFloat().Float64()
			d := f - p.means[j]
			p.stds[j] += d * d
		}
	}
	for j := range p.stds {
		p.stds[j] = math.Sqrt(p.stds[j] / float64(len(rows)))
		if p.stds[j] == 0 {
			p.stds[j] = 1 // constant feature, leave it centered only
		}
	}
	return nil
}

// Transform implements processor.Processor.
func (p *Scaler) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	if p.means == nil {
		return nil, fmt.Errorf("scale used before fitting")
	}
	rows := in[0].AsValueSlice()
	if len(rows) == 0 {
		return []cty.Value{cty.ListValEmpty(cty.List(cty.Number))}, nil
	}
	out := make([]cty.Value, len(rows))
	for i, row := range rows {
		vals := row.AsValueSlice()
		if len(vals) != len(p.means) {
			return nil, fmt.Errorf("row has %d features, fitted on %d", len(vals), len(p.means))
		}
		scaled := make([]cty.Value, len(vals))
		for j, v := range vals {
			f, _ := v.AsBigFloat().Float64()
			if p.withMean {
				f -= p.means[j]
			}
			if p.withStd {
				f /= p.stds[j]
			}
			scaled[j] = cty.NumberFloatVal(f)
		}
		out[i] = cty.ListVal(scaled)
	}
	return []cty.Value{cty.ListVal(out)}, nil
}

// Params implements processor.Processor.
func (p *Scaler) Params() map[string]cty.Value {
	return map[string]cty.Value{
		"with_mean": cty.BoolVal(p.withMean),
		"with_std":  cty.BoolVal(p.withStd),
	}
}

// SetParams implements processor.Processor.
func (p *Scaler) SetParams(params map[string]cty.Value) error {
	for name, v := range params {
		switch name {
		case "with_mean":
			p.withMean = v.True()
		case "with_std":
			p.withStd = v.True()
		default:
			return fmt.Errorf("unknown parameter %q for scale", name)
		}
	}
	return nil
}
