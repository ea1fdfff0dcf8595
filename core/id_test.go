package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("generates prefixed ULID", func(t *testing.T) {
		id := NewID("cmd")
		assert.True(t, strings.HasPrefix(id, "cmd_"))
		assert.Len(t, id, len("cmd_")+26)
	})

	t.Run("lowercases and trims prefix", func(t *testing.T) {
		id := NewID("  CL ")
		assert.True(t, strings.HasPrefix(id, "cl_"))
	})

	t.Run("panics on empty prefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("") })
		assert.Panics(t, func() { NewID("   ") })
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("cmd")
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID(NewID("cmd")))
	assert.False(t, IsValidULID("cmd_"))
	assert.False(t, IsValidULID("not-an-id"))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
}
