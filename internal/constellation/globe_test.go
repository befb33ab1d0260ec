package constellation

import (
	"testing"

	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoNode(id string, risk, lat, lng float64) models.GraphNode {
	return models.GraphNode{ID: id, Type: models.NodeExchange, RiskLevel: risk, Lat: ptr(lat), Lng: ptr(lng)}
}

func TestBuildThreatGlobe(t *testing.T) {
	nodes := []models.GraphNode{
		geoNode("nyc", 0.3, 40.7128, -74.0060),
		geoNode("ldn", 0.92, 51.5074, -0.1278),
		node("nowhere", models.NodeWallet, 0.8),
		{ID: "bad", Lat: ptr(120), Lng: ptr(10)},
	}
	edges := []models.GraphEdge{
		edge("nyc", "ldn", 0.7),
		edge("nyc", "nowhere", 0.9),
		edge("ldn", "missing", 0.9),
	}

	globe := BuildThreatGlobe(nodes, edges)

	require.Len(t, globe.Points, 2)
	assert.Equal(t, "nyc", globe.Points[0].ID)
	assert.Greater(t, globe.Points[1].Altitude, globe.Points[0].Altitude)

	require.Len(t, globe.Arcs, 1)
	arc := globe.Arcs[0]
	assert.InDelta(t, 5570, arc.DistanceKm, 20)
	assert.Equal(t, ComputeRiskColor(0.92), arc.Color)
	assert.Greater(t, arc.MidLat, 40.0)
	assert.Greater(t, arc.ArcAltitude, minArcAltitude)
	assert.Less(t, arc.ArcAltitude, maxArcAltitude)
}

func TestBuildThreatGlobeEmpty(t *testing.T) {
	globe := BuildThreatGlobe(nil, nil)
	assert.NotNil(t, globe.Points)
	assert.Empty(t, globe.Points)
	assert.Empty(t, globe.Arcs)
}
