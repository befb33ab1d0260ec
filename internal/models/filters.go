package models

// TopItemsFilter represents query parameters for the top-items endpoint
type TopItemsFilter struct {
	Layer string `form:"layer" binding:"required"`
	Limit int    `form:"limit"` // Default 10
}

// ClassifyFilter represents query parameters for risk classification
type ClassifyFilter struct {
	Score *float64 `form:"score" binding:"required"`
}

// HistoryFilter represents query parameters for snapshot history
type HistoryFilter struct {
	Limit int `form:"limit"` // Default 50, max 500
}

// CanvasFilter represents query parameters for constellation rendering
type CanvasFilter struct {
	Width  float64 `form:"width"`  // Pixels
	Height float64 `form:"height"` // Pixels
	Seed   uint64  `form:"seed"`   // Starfield seed, 0 = random
}

// SpikeRequest is the body of a spike detection request
type SpikeRequest struct {
	Current  Scores `json:"current"`
	Previous Scores `json:"previous"`
}

// ConstellationRequest is the body of a stateless constellation build
type ConstellationRequest struct {
	Nodes  []GraphNode `json:"nodes"`
	Edges  []GraphEdge `json:"edges"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Seed   uint64      `json:"seed"`
}
