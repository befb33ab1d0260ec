package models

import "time"

// HeatmapSnapshot is one persisted heatmap refresh
type HeatmapSnapshot struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	CapturedAt time.Time  `json:"captured_at"`
	GlobalRisk float64    `json:"global_risk"`
	Raw        HeatmapRaw `json:"raw"`
}

// SnapshotSummary is a snapshot without its scores
type SnapshotSummary struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CapturedAt time.Time `json:"captured_at"`
	GlobalRisk float64   `json:"global_risk"`
	ScoreCount int       `json:"score_count"`
}
