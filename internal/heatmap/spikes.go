package heatmap

import (
	"sort"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// SpikeThreshold is the minimum rise, exclusive, reported as a spike
const SpikeThreshold = 0.20

// DetectSpikes compares two snapshots of one layer.
// Only keys present in current are considered; a key missing from previous
// counts as 0. Results are sorted by change, largest first.
func DetectSpikes(current, previous models.Scores) []models.Spike {
	prev := previous.Lookup()
	spikes := make([]models.Spike, 0)
	for _, e := range current {
		before := prev[e.Key]
		change := e.Score - before
		if change > SpikeThreshold {
			spikes = append(spikes, models.Spike{
				Key:      e.Key,
				Current:  e.Score,
				Previous: before,
				Change:   change,
			})
		}
	}

	sort.SliceStable(spikes, func(i, j int) bool {
		return spikes[i].Change > spikes[j].Change
	})
	return spikes
}

// DetectLayerSpikes runs DetectSpikes for every fixed layer and tags each spike
// with its layer. Layers keep their fixed order; spikes within a layer are
// sorted by change.
func DetectLayerSpikes(current, previous models.HeatmapRaw) []models.Spike {
	spikes := make([]models.Spike, 0)
	for _, name := range models.LayerNames {
		for _, s := range DetectSpikes(current[name], previous[name]) {
			s.Layer = name
			spikes = append(spikes, s)
		}
	}
	return spikes
}
