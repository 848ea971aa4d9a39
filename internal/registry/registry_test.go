package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/processor"
)

type nopProc struct{}

func (nopProc) ComputeOutputShapes(in []processor.Shape) ([]processor.Shape, error) {
	return []processor.Shape{in[0]}, nil
}
func (nopProc) Transform(_ context.Context, in []cty.Value) ([]cty.Value, error) {
	return in, nil
}
func (nopProc) Params() map[string]cty.Value         { return nil }
func (nopProc) SetParams(map[string]cty.Value) error { return nil }

func TestRegisterAndConstruct(t *testing.T) {
	r := New()
	r.RegisterProcessor("nop", func(map[string]cty.Value) (processor.Processor, error) {
		return nopProc{}, nil
	})

	proc, err := r.NewProcessor("nop", nil)
	require.NoError(t, err)
	assert.NotNil(t, proc)
	assert.Equal(t, []string{"nop"}, r.Types())
}

func TestUnknownType(t *testing.T) {
	r := New()
	_, err := r.NewProcessor("missing", nil)
	assert.ErrorContains(t, err, "unknown processor type")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := New()
	f := func(map[string]cty.Value) (processor.Processor, error) { return nopProc{}, nil }
	r.RegisterProcessor("nop", f)
	assert.Panics(t, func() { r.RegisterProcessor("nop", f) })
}
