package graph

import (
	"fmt"

	"github.com/vk/flowgridgo/internal/processor"
)

// Apply binds the node to its input Data handles, creating the graph edges
// and allocating one Data handle per declared output slot. It returns the
// handles in slot order.
//
// All validation happens before the graph is touched, so a failed apply
// leaves no half-built edges or handles behind.
func (n *Node) Apply(inputs ...*Data) ([]*Data, error) {
	return n.ApplySupervised(inputs, nil)
}

// ApplySupervised is Apply with designated supervised targets. Targets are
// recorded on the node for fit-time resolution but create no graph edges, so
// predict-time compiles prune them away. A target must be produced by an
// input node.
func (n *Node) ApplySupervised(inputs, targets []*Data) ([]*Data, error) {
	if n.input {
		return nil, fmt.Errorf("input node %q cannot be applied", n.name)
	}
	if n.proc == nil {
		return nil, fmt.Errorf("node %q has no processor", n.name)
	}
	if n.applied {
		return nil, fmt.Errorf("node %q is already applied; rebinding inputs is not supported", n.name)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("node %q applied with no inputs", n.name)
	}

	for _, d := range append(append([]*Data(nil), inputs...), targets...) {
		if d.node.graph != n.graph {
			return nil, &ForeignGraphError{Node: n.name, Data: d.name}
		}
	}
	for _, t := range targets {
		if !t.node.input {
			return nil, fmt.Errorf("target %q for node %q is not an input; computed targets are not supported", t.name, n.name)
		}
	}

	inShapes := make([]processor.Shape, len(inputs))
	for i, d := range inputs {
		inShapes[i] = d.shape
	}
	outShapes, err := n.proc.ComputeOutputShapes(inShapes)
	if err != nil {
		return nil, &ShapeMismatchError{Node: n.name, Reason: err}
	}
	if len(outShapes) == 0 {
		return nil, fmt.Errorf("processor of node %q declared zero output slots", n.name)
	}

	for _, d := range inputs {
		// An unapplied node has no successors, so a cycle is impossible here;
		// any AddEdge failure indicates store corruption.
		if err := n.graph.AddEdge(d, n); err != nil {
			return nil, fmt.Errorf("binding %q to %q: %w", d.name, n.name, err)
		}
	}

	outputs := make([]*Data, len(outShapes))
	for i, shape := range outShapes {
		slot := "out"
		if len(outShapes) > 1 {
			slot = fmt.Sprintf("out%d", i)
		}
		outputs[i] = &Data{
			node:  n,
			slot:  i,
			name:  fmt.Sprintf("%s.%s", n.name, n.graph.names.Reserve(n.name, slot)),
			shape: shape.Clone(),
		}
	}

	n.inputs = append([]*Data(nil), inputs...)
	n.targets = append([]*Data(nil), targets...)
	n.outputs = outputs
	n.applied = true
	return outputs, nil
}
