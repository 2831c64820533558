package generative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_ObjectShapes(t *testing.T) {
	t.Run("strict parse", func(t *testing.T) {
		v := sanitize(`{"found": true}`, ShapeObject)
		assert.Equal(t, map[string]any{"found": true}, v)
	})

	t.Run("brace-delimited recovery", func(t *testing.T) {
		raw := "Sure! Here is the JSON you asked for:\n```json\n{\"escalate\": false}\n```\nLet me know if you need anything else."
		v := sanitize(raw, ShapeObject)
		assert.Equal(t, map[string]any{"escalate": false}, v)
	})

	t.Run("unrecoverable text becomes error object", func(t *testing.T) {
		v := sanitize("not json at all", ShapeObject)
		assert.Equal(t, map[string]any{"error": "malformed output", "raw": "not json at all"}, v)
	})

	t.Run("broken braces become error object", func(t *testing.T) {
		raw := "{ this is { not } valid json"
		v := sanitize(raw, ShapeObject)
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "malformed output", m["error"])
		assert.Equal(t, raw, m["raw"])
	})
}

func TestSanitize_TextShape(t *testing.T) {
	v := sanitize("  Could you share your OS version?  \n", ShapeText)
	assert.Equal(t, "Could you share your OS version?", v)
}

func TestIsSkipped(t *testing.T) {
	reason, skipped := isSkipped(map[string]any{"skipped": true, "reason": "not resolved"})
	assert.True(t, skipped)
	assert.Equal(t, "not resolved", reason)

	reason, skipped = isSkipped(map[string]any{"skipped": true})
	assert.True(t, skipped)
	assert.Equal(t, "no reason provided", reason)

	_, skipped = isSkipped(map[string]any{"skipped": false})
	assert.False(t, skipped)

	_, skipped = isSkipped("plain text")
	assert.False(t, skipped)
}
