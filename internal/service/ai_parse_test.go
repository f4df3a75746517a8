package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStringArray(t *testing.T) {
	t.Run("bare JSON array", func(t *testing.T) {
		items, ok := extractStringArray(`["React", "Vue"]`)
		assert.True(t, ok)
		assert.Equal(t, []string{"React", "Vue"}, items)
	})

	t.Run("array wrapped in prose", func(t *testing.T) {
		items, ok := extractStringArray("Sure! Here you go: [\"React\", \"Node.js\"] Hope that helps.")
		assert.True(t, ok)
		assert.Equal(t, []string{"React", "Node.js"}, items)
	})

	t.Run("array in a code fence", func(t *testing.T) {
		items, ok := extractStringArray("```json\n[\"Go\", \"Docker\"]\n```")
		assert.True(t, ok)
		assert.Equal(t, []string{"Go", "Docker"}, items)
	})

	t.Run("non-string entries are dropped", func(t *testing.T) {
		items, ok := extractStringArray(`["React", 42, null, "Vue"]`)
		assert.True(t, ok)
		assert.Equal(t, []string{"React", "Vue"}, items)
	})

	t.Run("no array at all", func(t *testing.T) {
		_, ok := extractStringArray("I cannot answer that.")
		assert.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := extractStringArray("")
		assert.False(t, ok)
	})
}
