package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Heatmap layer names, in the order they are always reported
const (
	LayerChains   = "chains"
	LayerEntities = "entities"
	LayerTokens   = "tokens"
	LayerNetworks = "networks"
)

// LayerNames lists the four fixed heatmap layers
var LayerNames = []string{LayerChains, LayerEntities, LayerTokens, LayerNetworks}

// IsLayerName reports whether name is one of the fixed heatmap layers
func IsLayerName(name string) bool {
	for _, n := range LayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// HeatmapRaw is the per-layer score payload supplied by the intelligence API
type HeatmapRaw map[string]Scores

// ParseHeatmapRaw decodes an API payload.
// A layer that cannot be decoded is treated as empty; a payload that is not
// a JSON object yields an empty HeatmapRaw and an error.
func ParseHeatmapRaw(data []byte) (HeatmapRaw, error) {
	var layers map[string]json.RawMessage
	if err := json.Unmarshal(data, &layers); err != nil {
		return HeatmapRaw{}, fmt.Errorf("invalid heatmap payload: %w", err)
	}

	raw := make(HeatmapRaw, len(layers))
	for name, body := range layers {
		var scores Scores
		if err := json.Unmarshal(body, &scores); err != nil {
			scores = nil
		}
		raw[name] = scores
	}
	return raw, nil
}

// HeatmapLayer holds one layer's scores and summary statistics
type HeatmapLayer struct {
	Name     string  `json:"name"`
	Data     Scores  `json:"data"`
	MaxScore float64 `json:"max_score"`
	MinScore float64 `json:"min_score"`
	AvgScore float64 `json:"avg_score"`
}

// AggregatedHeatmap is the four summarized layers plus the global risk scalar
type AggregatedHeatmap struct {
	Chains     HeatmapLayer `json:"chains"`
	Entities   HeatmapLayer `json:"entities"`
	Tokens     HeatmapLayer `json:"tokens"`
	Networks   HeatmapLayer `json:"networks"`
	GlobalRisk float64      `json:"global_risk"`
	Timestamp  time.Time    `json:"timestamp"`
}

// Layers returns the layers in their fixed order
func (h AggregatedHeatmap) Layers() []HeatmapLayer {
	return []HeatmapLayer{h.Chains, h.Entities, h.Tokens, h.Networks}
}

// Layer returns a layer by name
func (h AggregatedHeatmap) Layer(name string) (HeatmapLayer, bool) {
	switch name {
	case LayerChains:
		return h.Chains, true
	case LayerEntities:
		return h.Entities, true
	case LayerTokens:
		return h.Tokens, true
	case LayerNetworks:
		return h.Networks, true
	}
	return HeatmapLayer{}, false
}

// RiskLevel is a discrete risk bucket
type RiskLevel string

// Risk levels, highest first
const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskModerate RiskLevel = "MODERATE"
	RiskLow      RiskLevel = "LOW"
	RiskMinimal  RiskLevel = "MINIMAL"
)

// RiskClass is a risk level with its display color
type RiskClass struct {
	Level RiskLevel `json:"level"`
	Color string    `json:"color"`
}

// Spike is a category whose score rose sharply between two snapshots
type Spike struct {
	Layer    string  `json:"layer,omitempty"`
	Key      string  `json:"key"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// Data sources a view can be built from
const (
	SourceLive      = "live"
	SourceCache     = "cache"
	SourceSynthetic = "synthetic"
)

// HeatmapView is what the dashboard receives on every poll
type HeatmapView struct {
	SnapshotID  string            `json:"snapshot_id,omitempty"`
	Source      string            `json:"source"`
	Heatmap     AggregatedHeatmap `json:"heatmap"`
	GlobalLevel RiskClass         `json:"global_level"`
	Spikes      []Spike           `json:"spikes"`
}
