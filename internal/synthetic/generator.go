// Package synthetic produces placeholder intelligence data for when the
// upstream API is unreachable, so the dashboard keeps rendering.
package synthetic

import (
	"fmt"
	"math/rand/v2"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

var layerKeys = map[string][]string{
	models.LayerChains:   {"ethereum", "bitcoin", "solana", "arbitrum", "base", "polygon", "bsc", "avalanche"},
	models.LayerEntities: {"whale_cluster", "market_maker", "otc_desk", "bridge_operator", "mev_bot", "fund"},
	models.LayerTokens:   {"BTC", "ETH", "SOL", "USDT", "USDC", "PEPE", "WIF", "ARB"},
	models.LayerNetworks: {"mainnet", "l2_rollups", "sidechains", "bridges", "mixers"},
}

var nodeTypes = []models.NodeType{
	models.NodeWhale, models.NodeInstitution, models.NodeExchange, models.NodeContract, models.NodeWallet,
}

// Generator produces synthetic heatmaps and entity graphs.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. The same seed yields the same sequence.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))}
}

// Heatmap returns a payload covering every layer.
// Most scores sit in the low-to-moderate range with occasional hot spots.
func (g *Generator) Heatmap() models.HeatmapRaw {
	raw := make(models.HeatmapRaw, len(models.LayerNames))
	for _, name := range models.LayerNames {
		keys := layerKeys[name]
		scores := make(models.Scores, len(keys))
		for i, key := range keys {
			score := g.rng.Float64() * 0.6
			if g.rng.Float64() < 0.15 {
				score = 0.7 + g.rng.Float64()*0.3
			}
			scores[i] = models.ScoreEntry{Key: key, Score: round(score)}
		}
		raw[name] = scores
	}
	return raw
}

// Graph returns clusters*perCluster entities grouped into clusters.
// Each cluster is densely linked inside with a few weak links between clusters.
func (g *Generator) Graph(clusters, perCluster int) models.EntityGraph {
	graph := models.EntityGraph{
		Nodes: make([]models.GraphNode, 0, clusters*perCluster),
		Edges: make([]models.GraphEdge, 0),
	}

	for c := 0; c < clusters; c++ {
		base := len(graph.Nodes)
		lat := g.rng.Float64()*120 - 60
		lng := g.rng.Float64()*360 - 180
		for i := 0; i < perCluster; i++ {
			nodeLat := clampLat(lat + g.rng.Float64()*10 - 5)
			nodeLng := wrapLng(lng + g.rng.Float64()*10 - 5)
			graph.Nodes = append(graph.Nodes, models.GraphNode{
				ID:        fmt.Sprintf("entity_%d_%d", c, i),
				Type:      nodeTypes[g.rng.IntN(len(nodeTypes))],
				Label:     fmt.Sprintf("Entity %d-%d", c, i),
				RiskLevel: round(g.rng.Float64()),
				Lat:       &nodeLat,
				Lng:       &nodeLng,
			})
		}
		for i := 1; i < perCluster; i++ {
			graph.Edges = append(graph.Edges, models.GraphEdge{
				SourceID: graph.Nodes[base+i-1].ID,
				TargetID: graph.Nodes[base+i].ID,
				Strength: round(0.5 + g.rng.Float64()*0.5),
				Relation: "transfers",
			})
		}
		if c > 0 {
			graph.Edges = append(graph.Edges, models.GraphEdge{
				SourceID: graph.Nodes[base-1].ID,
				TargetID: graph.Nodes[base].ID,
				Strength: round(g.rng.Float64() * 0.4),
				Relation: "bridges",
			})
		}
	}
	return graph
}

func round(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func clampLat(v float64) float64 {
	if v > 90 {
		return 90
	}
	if v < -90 {
		return -90
	}
	return v
}

func wrapLng(v float64) float64 {
	for v > 180 {
		v -= 360
	}
	for v < -180 {
		v += 360
	}
	return v
}
