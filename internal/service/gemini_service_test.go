package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdhoang/mockmate/internal/model"
)

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-10))
	assert.Equal(t, 0, clampScore(0))
	assert.Equal(t, 73, clampScore(72.6))
	assert.Equal(t, 72, clampScore(72.4))
	assert.Equal(t, 100, clampScore(100))
	assert.Equal(t, 100, clampScore(250))
}

func TestCollectTextEmptyResponse(t *testing.T) {
	assert.Empty(t, collectText(nil))
}

func TestCanonicalCategories(t *testing.T) {
	t.Run("out-of-order entries keep their scores", func(t *testing.T) {
		entries := []scoredCategory{
			{Name: "Confidence and Clarity", Score: 55, Comment: "hesitant"},
			{Name: "Problem Solving", Score: 80, Comment: "methodical"},
			{Name: "Communication Skills", Score: 70, Comment: "clear"},
			{Name: "Cultural Fit", Score: 65, Comment: "aligned"},
			{Name: "Technical Knowledge", Score: 90, Comment: "deep"},
		}

		got := canonicalCategories(entries)
		require.Len(t, got, len(model.FeedbackCategories))
		for i, name := range model.FeedbackCategories {
			assert.Equal(t, name, got[i].Name)
		}
		assert.Equal(t, 70, got[0].Score)
		assert.Equal(t, "clear", got[0].Comment)
		assert.Equal(t, 90, got[1].Score)
		assert.Equal(t, 80, got[2].Score)
		assert.Equal(t, 65, got[3].Score)
		assert.Equal(t, 55, got[4].Score)
		assert.Equal(t, "hesitant", got[4].Comment)
	})

	t.Run("drifted names fall back to position", func(t *testing.T) {
		entries := []scoredCategory{
			{Name: "communication", Score: 10},
			{Name: "technical", Score: 20},
			{Name: "problem solving", Score: 30},
			{Name: "culture", Score: 40},
			{Name: "confidence", Score: 50},
		}

		got := canonicalCategories(entries)
		for i, name := range model.FeedbackCategories {
			assert.Equal(t, name, got[i].Name)
			assert.Equal(t, (i+1)*10, got[i].Score)
		}
	})
}
