package model

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/processor"
)

// countingProc is a transform-only processor that counts invocations and
// passes its first input through unchanged.
type countingProc struct {
	transforms int
}

func (p *countingProc) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	return []processor.Shape{in[0].Clone()}, nil
}

func (p *countingProc) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	p.transforms++
	return []cty.Value{in[0]}, nil
}

func (p *countingProc) Params() map[string]cty.Value         { return nil }
func (p *countingProc) SetParams(map[string]cty.Value) error { return nil }

// concatProc concatenates two equally-long batches feature-wise.
type concatProc struct {
	transforms int
}

func (p *concatProc) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	if len(in) != 2 {
		return nil, fmt.Errorf("concat expects 2 inputs, got %d", len(in))
	}
	if len(in[0]) != 1 || len(in[1]) != 1 {
		return nil, fmt.Errorf("concat expects rank-1 inputs, got %s and %s", in[0], in[1])
	}
	return []processor.Shape{{in[0][0] + in[1][0]}}, nil
}

func (p *concatProc) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	p.transforms++
	left, right := in[0].AsValueSlice(), in[1].AsValueSlice()
	if len(left) != len(right) {
		return nil, fmt.Errorf("batch size mismatch: %d vs %d", len(left), len(right))
	}
	rows := make([]cty.Value, len(left))
	for i := range left {
		rows[i] = cty.ListVal(append(left[i].AsValueSlice(), right[i].AsValueSlice()...))
	}
	return []cty.Value{cty.ListVal(rows)}, nil
}

func (p *concatProc) Params() map[string]cty.Value         { return nil }
func (p *concatProc) SetParams(map[string]cty.Value) error { return nil }

// trainableProc records Fit calls and the targets it saw; Predict counts
// separately from Transform so tests can tell the two paths apart.
type trainableProc struct {
	countingProc
	fits     int
	predicts int
	targets  []cty.Value
}

func (p *trainableProc) Fit(_ context.Context, _ []cty.Value, targets []cty.Value) error {
	p.fits++
	p.targets = targets
	return nil
}

func (p *trainableProc) Predict(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	p.predicts++
	return []cty.Value{in[0]}, nil
}

// batch builds a list-of-rows value from float rows.
func batch(rows ...[]float64) cty.Value {
	out := make([]cty.Value, len(rows))
	for i, row := range rows {
		vals := make([]cty.Value, len(row))
		for j, f := range row {
			vals[j] = cty.NumberFloatVal(f)
		}
		out[i] = cty.ListVal(vals)
	}
	return cty.ListVal(out)
}
