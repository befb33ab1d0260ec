package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// NodeType is the entity classification of a graph node
type NodeType string

const (
	NodeWhale       NodeType = "whale"
	NodeInstitution NodeType = "institution"
	NodeExchange    NodeType = "exchange"
	NodeContract    NodeType = "contract"
	NodeWallet      NodeType = "wallet"
	NodeUnknown     NodeType = "unknown"
)

// GraphNode is an entity in the risk graph.
// X/Y are the source graph's own layout coordinates and Lat/Lng a geolocation;
// any of them may be absent.
type GraphNode struct {
	ID        string   `json:"id"`
	Type      NodeType `json:"type"`
	Label     string   `json:"label,omitempty"`
	RiskLevel float64  `json:"risk_level"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

// HasPosition reports whether the node carries explicit layout coordinates
func (n GraphNode) HasPosition() bool {
	return finitePtr(n.X) && finitePtr(n.Y)
}

// HasGeo reports whether the node carries a usable geolocation
func (n GraphNode) HasGeo() bool {
	return finitePtr(n.Lat) && finitePtr(n.Lng) &&
		*n.Lat >= -90 && *n.Lat <= 90 && *n.Lng >= -180 && *n.Lng <= 180
}

// GraphEdge is a weighted relationship between two entities
type GraphEdge struct {
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Strength float64 `json:"strength"`
	Relation string  `json:"relation,omitempty"`
}

// EntityGraph is the node/edge payload supplied by the intelligence API
type EntityGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ParseGraph decodes and sanitizes an API graph payload.
// Malformed JSON yields an empty graph and an error.
func ParseGraph(data []byte) (EntityGraph, error) {
	var g EntityGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return EntityGraph{}, fmt.Errorf("invalid graph payload: %w", err)
	}
	return g.Sanitize(), nil
}

// Sanitize drops nodes without an id and edges without endpoints,
// and zeroes non-finite risk and strength values.
// Edges to unknown nodes are kept; the builders skip them.
func (g EntityGraph) Sanitize() EntityGraph {
	out := EntityGraph{
		Nodes: make([]GraphNode, 0, len(g.Nodes)),
		Edges: make([]GraphEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		if !finite(n.RiskLevel) {
			n.RiskLevel = 0
		}
		if n.Type == "" {
			n.Type = NodeUnknown
		}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range g.Edges {
		if e.SourceID == "" || e.TargetID == "" {
			continue
		}
		if !finite(e.Strength) {
			e.Strength = 0
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePtr(v *float64) bool {
	return v != nil && finite(*v)
}
