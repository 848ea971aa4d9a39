// Package graph implements the symbolic dataflow graph: nodes wrapping
// processor instances, Data semi-edges connecting them, and the append-only
// adjacency store the compiler and executor traverse.
//
// The store is an arena of nodes indexed by a stable integer id, with
// successor and predecessor id-sets per node. Both directions are
// materialized because compilation walks predecessors on every compile.
package graph

import (
	"fmt"
	"sort"

	"github.com/vk/flowgridgo/internal/ident"
	"github.com/vk/flowgridgo/internal/processor"
)

// Graph is the container of nodes and their dependency relation. It is
// append-only: nodes and edges are added during construction and never
// removed. Not safe for concurrent mutation.
type Graph struct {
	name  string
	names *ident.Registry

	nodes []*Node
	ids   map[*Node]int
	succ  []map[int]struct{}
	pred  []map[int]struct{}
}

// New creates an empty graph. An empty name defaults to "graph".
func New(name string) *Graph {
	if name == "" {
		name = "graph"
	}
	return &Graph{
		name:  name,
		names: ident.NewRegistry(),
		ids:   make(map[*Node]int),
	}
}

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Contains reports whether the node is registered in this graph.
func (g *Graph) Contains(n *Node) bool {
	_, ok := g.ids[n]
	return ok
}

// AddNode registers a node in the arena. It fails with DuplicateNodeError if
// this exact node instance is already present; name collisions cannot occur
// because names are reserved at allocation time.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.ids[n]; ok {
		return &DuplicateNodeError{Node: n.name}
	}
	n.id = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.ids[n] = n.id
	g.succ = append(g.succ, make(map[int]struct{}))
	g.pred = append(g.pred, make(map[int]struct{}))
	return nil
}

// AddEdge records that consumer depends on the node producing d. It fails
// with ForeignGraphError if either endpoint is outside this graph and with
// CycleError if the edge would make the graph cyclic; on failure the graph is
// unchanged.
func (g *Graph) AddEdge(d *Data, consumer *Node) error {
	if _, ok := g.ids[consumer]; !ok {
		return &ForeignGraphError{Node: consumer.name, Data: d.name}
	}
	producer := d.node
	if _, ok := g.ids[producer]; !ok || producer.graph != g {
		return &ForeignGraphError{Node: consumer.name, Data: d.name}
	}
	if producer == consumer {
		return &CycleError{Producer: producer.name, Consumer: consumer.name}
	}
	if g.reachable(consumer.id, producer.id) {
		return &CycleError{Producer: producer.name, Consumer: consumer.name}
	}
	g.succ[producer.id][consumer.id] = struct{}{}
	g.pred[consumer.id][producer.id] = struct{}{}
	return nil
}

// reachable reports whether to can be reached from from by following
// successor edges.
func (g *Graph) reachable(from, to int) bool {
	seen := make(map[int]struct{})
	stack := []int{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		for next := range g.succ[cur] {
			stack = append(stack, next)
		}
	}
	return false
}

// Successors returns the nodes that consume any output of n, in insertion
// order.
func (g *Graph) Successors(n *Node) []*Node {
	return g.neighbors(g.succ, n)
}

// Predecessors returns the nodes whose outputs n consumes, in insertion
// order.
func (g *Graph) Predecessors(n *Node) []*Node {
	return g.neighbors(g.pred, n)
}

func (g *Graph) neighbors(adj []map[int]struct{}, n *Node) []*Node {
	id, ok := g.ids[n]
	if !ok {
		return nil
	}
	ids := make([]int, 0, len(adj[id]))
	for other := range adj[id] {
		ids = append(ids, other)
	}
	sort.Ints(ids)
	out := make([]*Node, len(ids))
	for i, other := range ids {
		out[i] = g.nodes[other]
	}
	return out
}

// TopologicalOrder returns an ordering of subset consistent with every edge
// whose endpoints are both in subset. Ties are broken by insertion order so
// repeated calls are deterministic. A cycle within subset returns CycleError;
// with edges only ever added forward this indicates store corruption.
func (g *Graph) TopologicalOrder(subset []*Node) ([]*Node, error) {
	in := make(map[int]struct{}, len(subset))
	for _, n := range subset {
		if _, ok := g.ids[n]; !ok {
			return nil, &ForeignGraphError{Node: n.name}
		}
		in[n.id] = struct{}{}
	}

	// Kahn's algorithm with a ready list kept sorted by arena id, which is
	// insertion order.
	indegree := make(map[int]int, len(in))
	var ready []int
	for id := range in {
		deg := 0
		for p := range g.pred[id] {
			if _, ok := in[p]; ok {
				deg++
			}
		}
		indegree[id] = deg
		if deg == 0 {
			ready = insertSorted(ready, id)
		}
	}

	order := make([]*Node, 0, len(in))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, g.nodes[id])
		for s := range g.succ[id] {
			if _, ok := in[s]; !ok {
				continue
			}
			indegree[s]--
			if indegree[s] == 0 {
				ready = insertSorted(ready, s)
			}
		}
	}

	if len(order) != len(in) {
		for id := range in {
			if indegree[id] > 0 {
				return nil, &CycleError{Producer: g.nodes[id].name, Consumer: g.nodes[id].name}
			}
		}
	}
	return order, nil
}

func insertSorted(ids []int, id int) []int {
	i := sort.SearchInts(ids, id)
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

// NewNode allocates a node wrapping proc, reserves its name in this graph and
// registers it. No edges exist until the node is applied.
func (g *Graph) NewNode(proc processor.Processor, name string, frozen bool) *Node {
	if name == "" {
		name = "node"
	}
	n := &Node{
		graph:  g,
		name:   g.names.Reserve(g.name, name),
		proc:   proc,
		frozen: frozen,
	}
	// The node is freshly allocated, so registration cannot collide.
	if err := g.AddNode(n); err != nil {
		panic(fmt.Sprintf("graph: fresh node collided: %v", err))
	}
	return n
}

// NewInput allocates a degenerate node with no predecessors and no transform,
// binding shape and name to externally supplied values, and returns its
// single Data handle.
func (g *Graph) NewInput(name string, shape processor.Shape) *Data {
	if name == "" {
		name = "input"
	}
	n := g.NewNode(nil, name, true)
	n.input = true
	n.applied = true
	d := &Data{
		node:  n,
		slot:  0,
		name:  n.name,
		shape: shape.Clone(),
	}
	n.outputs = []*Data{d}
	return d
}
