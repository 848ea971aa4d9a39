package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	t.Run("first reservation wins the bare name", func(t *testing.T) {
		r := NewRegistry()
		assert.Equal(t, "x1", r.Reserve("g", "x1"))
	})

	t.Run("collisions get deterministic suffixes", func(t *testing.T) {
		r := NewRegistry()
		require.Equal(t, "x1", r.Reserve("g", "x1"))
		assert.Equal(t, "x1_1", r.Reserve("g", "x1"))
		assert.Equal(t, "x1_2", r.Reserve("g", "x1"))
	})

	t.Run("scopes are independent", func(t *testing.T) {
		r := NewRegistry()
		require.Equal(t, "out", r.Reserve("node_a", "out"))
		assert.Equal(t, "out", r.Reserve("node_b", "out"))
	})

	t.Run("suffixed variants are themselves reserved", func(t *testing.T) {
		r := NewRegistry()
		require.Equal(t, "s_1", r.Reserve("g", "s_1"))
		require.Equal(t, "s", r.Reserve("g", "s"))
		// "s" collides with nothing, but the next "s" must skip the taken "s_1".
		assert.Equal(t, "s_2", r.Reserve("g", "s"))
	})
}

func TestReserved(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Reserved("g", "x"))
	r.Reserve("g", "x")
	assert.True(t, r.Reserved("g", "x"))
	assert.False(t, r.Reserved("other", "x"))
}
