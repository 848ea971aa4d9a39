// Package model compiles a selected subgraph into an immutable Model and
// executes it against concrete values: a sequential feed-forward walk with a
// per-run cache so no node runs more than once per run, computing only what
// the requested outputs demand.
package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/graph"
)

// Values maps Data handles to concrete batch values.
type Values map[*graph.Data]cty.Value

// Model is an immutable compiled subgraph: designated inputs, designated
// outputs and a frozen topological order of the nodes needed to compute the
// outputs from the inputs. Safe to reuse across runs.
type Model struct {
	g       *graph.Graph
	inputs  []*graph.Data
	outputs []*graph.Data
	order   []*graph.Node
	inOrder map[*graph.Node]struct{}
}

// Compile derives the minimal ordered subgraph that computes outputs from
// inputs. Backward reachability from each output's producer terminates at
// designated input nodes; every frontier node that is not a designated input
// fails the sufficiency check with MissingInputError. Inputs on no path to
// any output are allowed and simply excluded from the order.
func Compile(inputs, outputs []*graph.Data) (*Model, error) {
	if len(outputs) == 0 {
		return nil, fmt.Errorf("compile: no outputs designated")
	}

	g := outputs[0].Node().Graph()
	for _, d := range append(append([]*graph.Data(nil), inputs...), outputs...) {
		if d.Node().Graph() != g {
			return nil, &graph.ForeignGraphError{Node: d.Node().Name(), Data: d.Name()}
		}
	}

	inputNodes := make(map[*graph.Node]struct{}, len(inputs))
	for _, d := range inputs {
		inputNodes[d.Node()] = struct{}{}
	}

	visited := make(map[*graph.Node]struct{})
	var stack []*graph.Node
	for _, d := range outputs {
		if _, ok := inputNodes[d.Node()]; ok {
			continue // output handed straight through from an input
		}
		stack = append(stack, d.Node())
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}

		preds := g.Predecessors(n)
		if len(preds) == 0 {
			// Frontier with nothing further to visit: only acceptable for
			// designated inputs, which terminated the traversal above.
			return nil, &MissingInputError{Node: n.Name()}
		}
		for _, p := range preds {
			if _, ok := inputNodes[p]; ok {
				continue
			}
			stack = append(stack, p)
		}
	}

	subset := make([]*graph.Node, 0, len(visited))
	for _, n := range g.Nodes() { // arena order keeps this deterministic
		if _, ok := visited[n]; ok {
			subset = append(subset, n)
		}
	}
	order, err := g.TopologicalOrder(subset)
	if err != nil {
		return nil, err
	}

	m := &Model{
		g:       g,
		inputs:  append([]*graph.Data(nil), inputs...),
		outputs: append([]*graph.Data(nil), outputs...),
		order:   order,
		inOrder: make(map[*graph.Node]struct{}, len(order)),
	}
	for _, n := range order {
		m.inOrder[n] = struct{}{}
	}
	return m, nil
}

// Graph returns the owning graph.
func (m *Model) Graph() *graph.Graph { return m.g }

// Inputs returns the designated input handles.
func (m *Model) Inputs() []*graph.Data {
	return append([]*graph.Data(nil), m.inputs...)
}

// Outputs returns the designated output handles.
func (m *Model) Outputs() []*graph.Data {
	return append([]*graph.Data(nil), m.outputs...)
}

// Order returns the frozen execution order.
func (m *Model) Order() []*graph.Node {
	return append([]*graph.Node(nil), m.order...)
}

// Resolve maps a name to a Data handle known to the model: a designated
// input or output, or any output of a node in the execution order. A bare
// node name resolves to that node's sole output.
func (m *Model) Resolve(name string) (*graph.Data, error) {
	var candidates []*graph.Data
	candidates = append(candidates, m.inputs...)
	candidates = append(candidates, m.outputs...)
	for _, n := range m.order {
		candidates = append(candidates, n.Outputs()...)
	}

	for _, d := range candidates {
		if d.Name() == name {
			return d, nil
		}
	}
	for _, d := range candidates {
		if d.Node().Name() == name && len(d.Node().Outputs()) == 1 {
			return d, nil
		}
	}
	return nil, &MissingOutputError{Output: name}
}

// FeedNamed translates name-keyed values into handle-keyed Values.
func (m *Model) FeedNamed(values map[string]cty.Value) (Values, error) {
	out := make(Values, len(values))
	for name, v := range values {
		d, err := m.Resolve(name)
		if err != nil {
			return nil, err
		}
		out[d] = v
	}
	return out, nil
}

// NamedResults translates handle-keyed results back into name-keyed values.
func NamedResults(results Values) map[string]cty.Value {
	out := make(map[string]cty.Value, len(results))
	for d, v := range results {
		out[d.Name()] = v
	}
	return out
}
