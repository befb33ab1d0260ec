package heatmap

import (
	"testing"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSpikes(t *testing.T) {
	t.Run("RiseAboveThreshold", func(t *testing.T) {
		spikes := DetectSpikes(scores("a", 0.9), scores("a", 0.5))
		require.Len(t, spikes, 1)
		assert.Equal(t, "a", spikes[0].Key)
		assert.InDelta(t, 0.4, spikes[0].Change, 1e-9)
		assert.Equal(t, 0.9, spikes[0].Current)
		assert.Equal(t, 0.5, spikes[0].Previous)
	})

	t.Run("SmallRise", func(t *testing.T) {
		assert.Empty(t, DetectSpikes(scores("a", 0.6), scores("a", 0.5)))
	})

	t.Run("MissingPreviousCountsAsZero", func(t *testing.T) {
		spikes := DetectSpikes(scores("new", 0.35), nil)
		require.Len(t, spikes, 1)
		assert.Equal(t, 0.0, spikes[0].Previous)
	})

	t.Run("DisappearedKeysIgnored", func(t *testing.T) {
		assert.Empty(t, DetectSpikes(models.Scores{}, scores("gone", 0.9)))
	})

	t.Run("Drops", func(t *testing.T) {
		assert.Empty(t, DetectSpikes(scores("a", 0.1), scores("a", 0.9)))
	})

	t.Run("SortedByChange", func(t *testing.T) {
		spikes := DetectSpikes(
			scores("a", 0.5, "b", 0.95, "c", 0.7, "d", 0.8),
			scores("a", 0.2, "b", 0.1, "c", 0.1, "d", 0.5),
		)
		require.Len(t, spikes, 4)
		assert.Equal(t, "b", spikes[0].Key)
		assert.Equal(t, "c", spikes[1].Key)
		// a and d both rose 0.3; a came first
		assert.Equal(t, "a", spikes[2].Key)
		assert.Equal(t, "d", spikes[3].Key)
	})
}

func TestDetectLayerSpikes(t *testing.T) {
	current := models.HeatmapRaw{
		models.LayerTokens: scores("pepe", 0.9),
		models.LayerChains: scores("sol", 0.6, "eth", 0.3),
	}
	previous := models.HeatmapRaw{
		models.LayerTokens: scores("pepe", 0.2),
		models.LayerChains: scores("sol", 0.3, "eth", 0.25),
	}

	spikes := DetectLayerSpikes(current, previous)
	require.Len(t, spikes, 2)
	assert.Equal(t, models.LayerChains, spikes[0].Layer)
	assert.Equal(t, "sol", spikes[0].Key)
	assert.Equal(t, models.LayerTokens, spikes[1].Layer)
}
