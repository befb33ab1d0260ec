// Package constellation turns an entity risk graph into drawable primitives for
// the constellation map and the threat globe. Builders are pure: the same graph
// always produces the same model, apart from the decorative starfield.
package constellation

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// Options tunes the visual model. Zero fields take the DefaultOptions value,
// so a threshold of exactly 0 cannot be requested; pass a tiny positive value
// such as 1e-9 to admit every positive strength or risk.
type Options struct {
	GalaxyEdgeThreshold float64 // Inclusive: strength at or above this joins two nodes into a galaxy
	MinGalaxySize       int
	SupernovaThreshold  float64 // Risk strictly above this is a supernova
	PulseFactor         float64 // pulseSpeed = PulseFactor * risk
	WormholeThreshold   float64 // Strength strictly above this is a wormhole
	StarfieldSize       int
	LayoutIterations    int
	Padding             float64 // Pixels kept clear along the canvas border
	MaxNodes            int     // Largest caller-supplied graph; layout cost is quadratic in nodes
}

// DefaultOptions returns the standard constellation settings
func DefaultOptions() Options {
	return Options{
		GalaxyEdgeThreshold: 0.5,
		MinGalaxySize:       3,
		SupernovaThreshold:  0.7,
		PulseFactor:         2.0,
		WormholeThreshold:   0.7,
		StarfieldSize:       200,
		LayoutIterations:    120,
		Padding:             24,
		MaxNodes:            2000,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GalaxyEdgeThreshold == 0 {
		o.GalaxyEdgeThreshold = d.GalaxyEdgeThreshold
	}
	if o.MinGalaxySize <= 0 {
		o.MinGalaxySize = d.MinGalaxySize
	}
	if o.SupernovaThreshold == 0 {
		o.SupernovaThreshold = d.SupernovaThreshold
	}
	if o.PulseFactor == 0 {
		o.PulseFactor = d.PulseFactor
	}
	if o.WormholeThreshold == 0 {
		o.WormholeThreshold = d.WormholeThreshold
	}
	if o.StarfieldSize <= 0 {
		o.StarfieldSize = d.StarfieldSize
	}
	if o.LayoutIterations <= 0 {
		o.LayoutIterations = d.LayoutIterations
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = d.MaxNodes
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// Builder builds constellation visual models
type Builder struct {
	opts Options
}

// NewBuilder creates a builder
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Options returns the effective settings
func (b *Builder) Options() Options {
	return b.opts
}

// BuildVisualModel builds a model with the default options
func BuildVisualModel(nodes []models.GraphNode, edges []models.GraphEdge, width, height float64, rng RandSource) models.ConstellationVisual {
	return NewBuilder(DefaultOptions()).Build(nodes, edges, width, height, rng)
}

// Build projects the graph onto a width x height canvas.
// Duplicate node ids keep their first occurrence; edges referencing unknown
// nodes are dropped.
func (b *Builder) Build(nodes []models.GraphNode, edges []models.GraphEdge, width, height float64, rng RandSource) models.ConstellationVisual {
	width, height = canvasDimension(width), canvasDimension(height)

	unique, index := dedupeNodes(nodes)
	links := resolveLinks(edges, index)

	area := canvasRect(width, height, b.opts.Padding)
	positions := placeNodes(unique, links, area, b.opts.LayoutIterations)

	visual := models.ConstellationVisual{
		Width:      width,
		Height:     height,
		Nodes:      make([]models.VisualNode, len(unique)),
		Edges:      make([]models.VisualEdge, len(links)),
		Supernovas: make([]models.Supernova, 0),
		Wormholes:  make([]models.Wormhole, 0),
	}

	for i, n := range unique {
		visual.Nodes[i] = models.VisualNode{
			GraphNode:   n,
			NormalizedX: positions[i].X,
			NormalizedY: positions[i].Y,
			Color:       ComputeRiskColor(n.RiskLevel),
			Size:        ComputeNodeSize(n.Type, n.RiskLevel),
		}
		if n.RiskLevel > b.opts.SupernovaThreshold {
			visual.Supernovas = append(visual.Supernovas, models.Supernova{
				NodeID:     n.ID,
				X:          positions[i].X,
				Y:          positions[i].Y,
				Risk:       n.RiskLevel,
				PulseSpeed: b.opts.PulseFactor * n.RiskLevel,
				Color:      ComputeRiskColor(n.RiskLevel),
			})
		}
	}

	for i, l := range links {
		from, to := unique[l.from], unique[l.to]
		visual.Edges[i] = models.VisualEdge{
			GraphEdge: l.edge,
			Color:     ComputeRiskColor((from.RiskLevel + to.RiskLevel) / 2),
		}
		if l.strength > b.opts.WormholeThreshold {
			visual.Wormholes = append(visual.Wormholes, models.Wormhole{
				SourceID: l.edge.SourceID,
				TargetID: l.edge.TargetID,
				From:     toPoint(positions[l.from]),
				To:       toPoint(positions[l.to]),
				Flow:     l.strength,
				Color:    ComputeRiskColor(math.Max(from.RiskLevel, to.RiskLevel)),
			})
		}
	}

	visual.Galaxies = detectGalaxies(visual.Nodes, links, b.opts.GalaxyEdgeThreshold, b.opts.MinGalaxySize)
	visual.Starfield = generateStarfield(b.opts.StarfieldSize, width, height, rng)
	return visual
}

func canvasDimension(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func dedupeNodes(nodes []models.GraphNode) ([]models.GraphNode, map[string]int) {
	index := make(map[string]int, len(nodes))
	unique := make([]models.GraphNode, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := index[n.ID]; seen {
			continue
		}
		index[n.ID] = len(unique)
		unique = append(unique, n)
	}
	return unique, index
}

func resolveLinks(edges []models.GraphEdge, index map[string]int) []link {
	links := make([]link, 0, len(edges))
	for _, e := range edges {
		from, ok := index[e.SourceID]
		if !ok {
			continue
		}
		to, ok := index[e.TargetID]
		if !ok {
			continue
		}
		if math.IsNaN(e.Strength) || math.IsInf(e.Strength, 0) {
			e.Strength = 0
		}
		links = append(links, link{from: from, to: to, strength: e.Strength, edge: e})
	}
	return links
}

func toPoint(p r2.Point) models.Point {
	return models.Point{X: p.X, Y: p.Y}
}
