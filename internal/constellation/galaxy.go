package constellation

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/stats"
)

// unionFind groups node indices into connected components
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// detectGalaxies returns connected components of the subgraph of links with
// strength at or above threshold, keeping those with at least minSize members.
// Galaxies and their members follow node order.
func detectGalaxies(nodes []models.VisualNode, links []link, threshold float64, minSize int) []models.Galaxy {
	uf := newUnionFind(len(nodes))
	for _, l := range links {
		if l.strength >= threshold {
			uf.union(l.from, l.to)
		}
	}

	var roots []int
	members := make(map[int][]int)
	for i := range nodes {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			roots = append(roots, root)
		}
		members[root] = append(members[root], i)
	}

	galaxies := make([]models.Galaxy, 0)
	for _, root := range roots {
		group := members[root]
		if len(group) < minSize {
			continue
		}
		galaxies = append(galaxies, buildGalaxy(len(galaxies), nodes, group))
	}
	return galaxies
}

func buildGalaxy(id int, nodes []models.VisualNode, group []int) models.Galaxy {
	ids := make([]string, len(group))
	risks := make([]float64, len(group))
	var sum r2.Point
	largest := 0.0
	for k, i := range group {
		ids[k] = nodes[i].ID
		risks[k] = nodes[i].RiskLevel
		sum = sum.Add(r2.Point{X: nodes[i].NormalizedX, Y: nodes[i].NormalizedY})
		largest = math.Max(largest, nodes[i].Size)
	}
	center := sum.Mul(1 / float64(len(group)))

	spread := 0.0
	for _, i := range group {
		p := r2.Point{X: nodes[i].NormalizedX, Y: nodes[i].NormalizedY}
		spread = math.Max(spread, p.Sub(center).Norm())
	}

	risk := stats.Mean(risks)
	return models.Galaxy{
		ID:      id,
		Members: ids,
		Center:  models.Point{X: center.X, Y: center.Y},
		Radius:  spread + 2*largest,
		Risk:    risk,
		Color:   ComputeRiskColor(risk),
	}
}
