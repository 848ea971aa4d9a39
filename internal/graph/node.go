package graph

import (
	"fmt"

	"github.com/vk/flowgridgo/internal/processor"
)

// Node is one vertex of the dataflow graph, wrapping a single processor
// instance. A node's name and identity are fixed at creation; its input
// bindings and output handles are fixed the first time it is applied.
type Node struct {
	graph  *Graph
	id     int
	name   string
	proc   processor.Processor
	frozen bool
	input  bool

	inputs  []*Data
	targets []*Data
	outputs []*Data
	applied bool
}

// Name returns the node's resolved unique name within its graph.
func (n *Node) Name() string { return n.name }

// Graph returns the owning graph.
func (n *Node) Graph() *Graph { return n.graph }

// Processor returns the wrapped capability; nil for input nodes.
func (n *Node) Processor() processor.Processor { return n.proc }

// Frozen reports whether fitting is skipped for this node.
func (n *Node) Frozen() bool { return n.frozen }

// IsInput reports whether this is a degenerate input node.
func (n *Node) IsInput() bool { return n.input }

// Applied reports whether the node has been bound to inputs. Input nodes are
// born applied.
func (n *Node) Applied() bool { return n.applied }

// Inputs returns the Data handles this node consumes, in binding order.
func (n *Node) Inputs() []*Data { return n.inputs }

// Targets returns the designated supervised targets bound at apply time.
func (n *Node) Targets() []*Data { return n.targets }

// Outputs returns the Data handles this node produces, in slot order. Empty
// until the node has been applied.
func (n *Node) Outputs() []*Data { return n.outputs }

// Data is a semi-edge: one named output slot of one node. It is produced by
// exactly one node and may fan out to any number of consumers.
type Data struct {
	node  *Node
	slot  int
	name  string
	shape processor.Shape
}

// Node returns the producing node.
func (d *Data) Node() *Node { return d.node }

// Slot returns the output slot index on the producing node.
func (d *Data) Slot() int { return d.slot }

// Name returns the resolved name, nested under the producing node's name for
// processor outputs and equal to the node name for input nodes.
func (d *Data) Name() string { return d.name }

// Shape returns the declared dimensions, excluding the sample axis.
func (d *Data) Shape() processor.Shape { return d.shape }

// String implements fmt.Stringer for log output.
func (d *Data) String() string {
	return fmt.Sprintf("%s%s", d.name, d.shape)
}
