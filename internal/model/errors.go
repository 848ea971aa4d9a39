package model

import "fmt"

// MissingInputError reports that the designated inputs cannot cover a needed
// dependency. At compile time Node names the unresolved node; before a run it
// names the node whose value was not provided, with Data naming the handle.
type MissingInputError struct {
	Node string
	Data string
}

func (e *MissingInputError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("no value provided for %q (required by node %q)", e.Data, e.Node)
	}
	return fmt.Sprintf("node %q is not reachable from the designated inputs", e.Node)
}

// MissingOutputError reports a requested output that lies outside the
// compiled model.
type MissingOutputError struct {
	Output string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("requested output %q is not part of the compiled model", e.Output)
}

// InternalConsistencyError reports a cached value missing during execution
// despite the compile-time checks. It indicates a compiler or executor bug
// and is always fatal.
type InternalConsistencyError struct {
	Node string
	Data string
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency fault: value for %q absent while executing node %q", e.Data, e.Node)
}
