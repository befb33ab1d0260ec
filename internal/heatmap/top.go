package heatmap

import (
	"sort"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// TopItems returns the limit highest-scoring entries of a layer, highest first.
// Ties keep the layer's original order.
func TopItems(layer models.HeatmapLayer, limit int) []models.ScoreEntry {
	if limit <= 0 {
		return []models.ScoreEntry{}
	}

	items := make([]models.ScoreEntry, len(layer.Data))
	copy(items, layer.Data)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
