package model

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/processor"
)

// Mode selects the executor's behavior for trainable nodes.
type Mode int

const (
	// ModeFit trains non-frozen fit-capable nodes on their gathered inputs
	// (and designated targets) before producing outputs.
	ModeFit Mode = iota
	// ModePredict never trains; nodes only transform or predict.
	ModePredict
)

// String implements fmt.Stringer for log output.
func (m Mode) String() string {
	if m == ModeFit {
		return "fit"
	}
	return "predict"
}

// Fit executes the model in fit mode against the provided values, training
// every non-frozen fit-capable node exactly once.
func (m *Model) Fit(ctx context.Context, provided Values) error {
	_, err := m.run(ctx, provided, m.outputs, ModeFit)
	return err
}

// Predict executes the model in predict mode and returns the requested
// outputs, defaulting to all designated outputs. Nodes lying only on paths
// to outputs that were not requested are never invoked.
func (m *Model) Predict(ctx context.Context, provided Values, requested ...*graph.Data) (Values, error) {
	if len(requested) == 0 {
		requested = m.outputs
	}
	return m.run(ctx, provided, requested, ModePredict)
}

// run is the feed-forward walk: seed a per-run cache with the provided
// values, mark the nodes the requested outputs demand, validate that every
// demanded value is either provided or computable, then execute the frozen
// order sequentially. The cache is discarded when the run ends.
func (m *Model) run(ctx context.Context, provided Values, requested []*graph.Data, mode Mode) (Values, error) {
	logger := ctxlog.FromContext(ctx).With("mode", mode.String())

	cache := make(Values, len(provided))
	for d, v := range provided {
		cache[d] = v
	}

	needed := m.markNeeded(cache, requested)
	logger.Debug("Run plan prepared.", "orderLen", len(m.order), "needed", len(needed))

	if err := m.checkProvided(cache, needed, mode); err != nil {
		return nil, err
	}

	for _, n := range m.order {
		if _, ok := needed[n]; !ok {
			logger.Debug("Skipping node outside the demanded subgraph.", "node", n.Name())
			continue
		}
		if allCached(cache, n.Outputs()) {
			logger.Debug("Skipping node with fully cached outputs.", "node", n.Name())
			continue
		}
		if err := m.executeNode(ctx, n, cache, mode); err != nil {
			return nil, err
		}
	}

	results := make(Values, len(requested))
	for _, d := range requested {
		v, ok := cache[d]
		if !ok {
			return nil, &MissingOutputError{Output: d.Name()}
		}
		results[d] = v
	}
	return results, nil
}

// markNeeded walks backward from the requested outputs, stopping at values
// already in the cache and at the model boundary, and returns the set of
// nodes that must execute.
func (m *Model) markNeeded(cache Values, requested []*graph.Data) map[*graph.Node]struct{} {
	needed := make(map[*graph.Node]struct{})
	var stack []*graph.Node
	for _, d := range requested {
		if _, ok := cache[d]; ok {
			continue
		}
		stack = append(stack, d.Node())
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := m.inOrder[n]; !ok {
			continue // outside the model; surfaces as MissingOutputError later
		}
		if _, ok := needed[n]; ok {
			continue
		}
		if allCached(cache, n.Outputs()) {
			continue
		}
		needed[n] = struct{}{}
		for _, d := range n.Inputs() {
			if _, ok := cache[d]; ok {
				continue
			}
			stack = append(stack, d.Node())
		}
	}
	return needed
}

// checkProvided verifies, before any node executes, that every demanded
// value is either provided or produced by a node in the order, and that fit
// mode has values for every designated target.
func (m *Model) checkProvided(cache Values, needed map[*graph.Node]struct{}, mode Mode) error {
	for _, n := range m.order {
		if _, ok := needed[n]; !ok {
			continue
		}
		for _, d := range n.Inputs() {
			if _, ok := cache[d]; ok {
				continue
			}
			if _, ok := m.inOrder[d.Node()]; ok {
				continue // computed earlier in the walk
			}
			return &MissingInputError{Node: n.Name(), Data: d.Name()}
		}
		if mode == ModeFit && !n.Frozen() {
			if _, ok := n.Processor().(processor.Fitter); !ok {
				continue
			}
			for _, t := range n.Targets() {
				if _, ok := cache[t]; !ok {
					return &MissingInputError{Node: n.Name(), Data: t.Name()}
				}
			}
		}
	}
	return nil
}

// executeNode gathers the node's inputs from the cache, fits if the mode and
// node call for it, produces the outputs exactly once and stores them.
func (m *Model) executeNode(ctx context.Context, n *graph.Node, cache Values, mode Mode) error {
	logger := ctxlog.FromContext(ctx)

	inputs := make([]cty.Value, len(n.Inputs()))
	for i, d := range n.Inputs() {
		v, ok := cache[d]
		if !ok {
			return &InternalConsistencyError{Node: n.Name(), Data: d.Name()}
		}
		inputs[i] = v
	}

	proc := n.Processor()
	if mode == ModeFit && !n.Frozen() {
		if fitter, ok := proc.(processor.Fitter); ok {
			targets := make([]cty.Value, len(n.Targets()))
			for i, t := range n.Targets() {
				v, ok := cache[t]
				if !ok {
					return &InternalConsistencyError{Node: n.Name(), Data: t.Name()}
				}
				targets[i] = v
			}
			logger.Debug("Fitting node.", "node", n.Name(), "targets", len(targets))
			if err := fitter.Fit(ctx, inputs, targets); err != nil {
				return fmt.Errorf("fitting node %q: %w", n.Name(), err)
			}
		}
	}

	var outputs []cty.Value
	var err error
	if predictor, ok := proc.(processor.Predictor); ok && mode == ModePredict {
		logger.Debug("Predicting node.", "node", n.Name())
		outputs, err = predictor.Predict(ctx, inputs)
	} else {
		logger.Debug("Transforming node.", "node", n.Name())
		outputs, err = proc.Transform(ctx, inputs)
	}
	if err != nil {
		return fmt.Errorf("executing node %q: %w", n.Name(), err)
	}
	if len(outputs) != len(n.Outputs()) {
		return fmt.Errorf("node %q produced %d outputs, declared %d", n.Name(), len(outputs), len(n.Outputs()))
	}

	for i, d := range n.Outputs() {
		cache[d] = outputs[i]
	}
	return nil
}

func allCached(cache Values, handles []*graph.Data) bool {
	for _, d := range handles {
		if _, ok := cache[d]; !ok {
			return false
		}
	}
	return true
}
