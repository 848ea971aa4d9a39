package processor

import (
	"fmt"
	"strings"
)

// WildcardDim matches any size in a single dimension.
const WildcardDim = -1

// Shape describes the dimensions of one Data handle, excluding the leading
// sample axis. An empty Shape is a scalar per sample.
type Shape []int

// String renders the shape in (d1, d2, ...) form.
func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteRune('(')
	for i, d := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		if d == WildcardDim {
			sb.WriteRune('?')
		} else {
			fmt.Fprintf(&sb, "%d", d)
		}
	}
	sb.WriteRune(')')
	return sb.String()
}

// Equal reports whether two shapes have identical dimensions. Wildcards only
// match wildcards; use Compatible for validation.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Compatible reports whether two shapes agree, treating WildcardDim on either
// side as matching any size.
func (s Shape) Compatible(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] == WildcardDim || other[i] == WildcardDim {
			continue
		}
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}
