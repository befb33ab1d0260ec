package models

// Point is a canvas coordinate in pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VisualNode is a graph node placed on the canvas
type VisualNode struct {
	GraphNode
	NormalizedX float64 `json:"normalizedX"`
	NormalizedY float64 `json:"normalizedY"`
	Color       string  `json:"color"`
	Size        float64 `json:"size"`
}

// VisualEdge is a graph edge whose endpoints both resolved
type VisualEdge struct {
	GraphEdge
	Color string `json:"color"`
}

// Galaxy is a cluster of densely connected nodes
type Galaxy struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
	Center  Point    `json:"center"`
	Radius  float64  `json:"radius"`
	Risk    float64  `json:"risk"`
	Color   string   `json:"color"`
}

// Supernova is a high-risk node rendered with a pulse
type Supernova struct {
	NodeID     string  `json:"nodeId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Risk       float64 `json:"risk"`
	PulseSpeed float64 `json:"pulseSpeed"`
	Color      string  `json:"color"`
}

// Wormhole is a strong edge rendered as a highlighted connection
type Wormhole struct {
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	From     Point   `json:"from"`
	To       Point   `json:"to"`
	Flow     float64 `json:"flow"`
	Color    string  `json:"color"`
}

// Star is a decorative background point. It carries no data.
type Star struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Brightness float64 `json:"brightness"`
	Size       float64 `json:"size"`
}

// ConstellationVisual is the render model for the constellation map
type ConstellationVisual struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Nodes      []VisualNode `json:"nodes"`
	Edges      []VisualEdge `json:"edges"`
	Galaxies   []Galaxy     `json:"galaxies"`
	Supernovas []Supernova  `json:"supernovas"`
	Wormholes  []Wormhole   `json:"wormholes"`
	Starfield  []Star       `json:"starfield"`
}

// GlobePoint is a geolocated entity on the threat globe
type GlobePoint struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Risk     float64  `json:"risk"`
	Altitude float64  `json:"altitude"`
	Color    string   `json:"color"`
	Size     float64  `json:"size"`
}

// GlobeArc is a relationship drawn as an arc over the globe
type GlobeArc struct {
	SourceID    string  `json:"source_id"`
	TargetID    string  `json:"target_id"`
	StartLat    float64 `json:"start_lat"`
	StartLng    float64 `json:"start_lng"`
	EndLat      float64 `json:"end_lat"`
	EndLng      float64 `json:"end_lng"`
	MidLat      float64 `json:"mid_lat"`
	MidLng      float64 `json:"mid_lng"`
	DistanceKm  float64 `json:"distance_km"`
	ArcAltitude float64 `json:"arc_altitude"`
	Strength    float64 `json:"strength"`
	Color       string  `json:"color"`
}

// ThreatGlobe is the render model for the threat globe
type ThreatGlobe struct {
	Points []GlobePoint `json:"points"`
	Arcs   []GlobeArc   `json:"arcs"`
}
