package graph

import "github.com/vk/flowgridgo/internal/processor"

// The ambient graph is process-wide mutable state: construction calls that do
// not name a graph target the current one. Single-threaded by contract, like
// all graph construction.
var ambient []*Graph

// Current returns the ambient graph, default-constructing one on first use.
func Current() *Graph {
	if len(ambient) == 0 {
		ambient = append(ambient, New("default"))
	}
	return ambient[len(ambient)-1]
}

// Scope makes g the ambient graph and returns a restore function. Defer the
// restore immediately so the previous graph comes back on every exit path,
// panics included.
func Scope(g *Graph) (restore func()) {
	Current() // materialize the default before pushing over it
	ambient = append(ambient, g)
	return func() {
		ambient = ambient[:len(ambient)-1]
	}
}

// Input creates an input node in the ambient graph and returns its handle.
func Input(name string, shape processor.Shape) *Data {
	return Current().NewInput(name, shape)
}

// NewNode creates a processor node in the ambient graph.
func NewNode(proc processor.Processor, name string, frozen bool) *Node {
	return Current().NewNode(proc, name, frozen)
}
