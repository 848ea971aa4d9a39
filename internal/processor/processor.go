// Package processor defines the capability contract the engine expects from
// pluggable data-transformation components. The engine never inspects a
// processor beyond these interfaces; fitting and prediction semantics live
// entirely behind them.
package processor

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Processor is the minimum capability set every graph node wraps. Concrete
// values flowing in and out are cty.Value; a sample batch is a cty list whose
// elements are rows matching the declared shape.
type Processor interface {
	// ComputeOutputShapes validates the input shapes and returns one shape
	// per declared output slot. The returned slice's length fixes the node's
	// output arity.
	ComputeOutputShapes(inputs []Shape) ([]Shape, error)

	// Transform maps concrete input batches to output batches, one value per
	// output slot.
	Transform(ctx context.Context, inputs []cty.Value) ([]cty.Value, error)

	// Params returns the processor's hyperparameters.
	Params() map[string]cty.Value

	// SetParams overwrites hyperparameters. Unknown keys are an error.
	SetParams(params map[string]cty.Value) error
}

// Fitter is implemented by processors with trainable state. Targets is empty
// for unsupervised processors.
type Fitter interface {
	Fit(ctx context.Context, inputs, targets []cty.Value) error
}

// Predictor is implemented by processors whose inference step differs from
// Transform (classifiers, regressors). When present, the executor calls
// Predict in place of Transform.
type Predictor interface {
	Predict(ctx context.Context, inputs []cty.Value) ([]cty.Value, error)
}
