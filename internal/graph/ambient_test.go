package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgridgo/internal/processor"
)

func TestCurrentDefaultsOnFirstUse(t *testing.T) {
	ambient = nil
	t.Cleanup(func() { ambient = nil })

	g := Current()
	require.NotNil(t, g)
	assert.Equal(t, "default", g.Name())
	assert.Same(t, g, Current())
}

func TestScopeRestores(t *testing.T) {
	ambient = nil
	t.Cleanup(func() { ambient = nil })

	def := Current()
	scoped := New("scoped")

	restore := Scope(scoped)
	assert.Same(t, scoped, Current())
	restore()
	assert.Same(t, def, Current())
}

func TestScopeRestoresOnPanic(t *testing.T) {
	ambient = nil
	t.Cleanup(func() { ambient = nil })

	def := Current()
	scoped := New("scoped")

	func() {
		defer func() { _ = recover() }()
		defer Scope(scoped)()
		panic("construction failed")
	}()

	assert.Same(t, def, Current())
}

func TestAmbientConstruction(t *testing.T) {
	ambient = nil
	t.Cleanup(func() { ambient = nil })

	g := New("mine")
	defer Scope(g)()

	x := Input("x", processor.Shape{2})
	n := NewNode(&passthrough{}, "p", false)

	assert.Same(t, g, x.Node().Graph())
	assert.Same(t, g, n.Graph())
	assert.Len(t, g.Nodes(), 2)
}
