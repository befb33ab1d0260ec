// Package heatmap summarizes per-layer risk scores into the aggregated heatmap
// shown on the dashboard, and provides the risk ladder shared by every view.
package heatmap

import (
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/stats"
)

// Aggregate builds the four fixed layers from raw scores and computes the global risk.
// Absent layers are empty; names outside the fixed four are ignored.
func Aggregate(raw models.HeatmapRaw, at time.Time) models.AggregatedHeatmap {
	var global stats.Summary
	layers := make([]models.HeatmapLayer, len(models.LayerNames))
	for i, name := range models.LayerNames {
		var summary stats.Summary
		layers[i], summary = buildLayer(name, raw[name])
		global = global.Merge(summary)
	}

	return models.AggregatedHeatmap{
		Chains:     layers[0],
		Entities:   layers[1],
		Tokens:     layers[2],
		Networks:   layers[3],
		GlobalRisk: global.Mean(),
		Timestamp:  at,
	}
}

func buildLayer(name string, data models.Scores) (models.HeatmapLayer, stats.Summary) {
	if data == nil {
		data = models.Scores{}
	}
	summary := stats.Summarize(data.Values())
	return models.HeatmapLayer{
		Name:     name,
		Data:     data,
		MaxScore: summary.Max,
		MinScore: summary.Min,
		AvgScore: summary.Mean(),
	}, summary
}
