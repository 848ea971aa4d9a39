package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeString(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3)", Shape{3}.String())
	assert.Equal(t, "(2, ?)", Shape{2, WildcardDim}.String())
}

func TestShapeCompatible(t *testing.T) {
	assert.True(t, Shape{3}.Compatible(Shape{3}))
	assert.True(t, Shape{WildcardDim}.Compatible(Shape{7}))
	assert.True(t, Shape{2, 4}.Compatible(Shape{2, WildcardDim}))
	assert.False(t, Shape{3}.Compatible(Shape{4}))
	assert.False(t, Shape{3}.Compatible(Shape{3, 1}))
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, Shape{2, 2}.Equal(Shape{2, 2}))
	assert.False(t, Shape{2}.Equal(Shape{2, 2}))
	assert.False(t, Shape{WildcardDim}.Equal(Shape{1}))
}
