package graph

import "fmt"

// DuplicateNodeError reports an identity collision during node registration.
// Under correct use of the construction API it cannot surface; seeing one
// means the same *Node was registered twice.
type DuplicateNodeError struct {
	Node string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %q is already registered in its graph", e.Node)
}

// CycleError reports an edge insertion that would make the graph cyclic. The
// graph is left unchanged.
type CycleError struct {
	Producer string
	Consumer string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("edge %q -> %q would create a cycle", e.Producer, e.Consumer)
}

// ForeignGraphError reports a Data handle from one graph being passed to a
// node owned by another.
type ForeignGraphError struct {
	Node string
	Data string
}

func (e *ForeignGraphError) Error() string {
	return fmt.Sprintf("data %q belongs to a different graph than node %q", e.Data, e.Node)
}

// ShapeMismatchError reports incompatible declared shapes at invocation time.
type ShapeMismatchError struct {
	Node   string
	Reason error
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("incompatible input shapes for node %q: %v", e.Node, e.Reason)
}

func (e *ShapeMismatchError) Unwrap() error {
	return e.Reason
}
