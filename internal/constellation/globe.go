package constellation

import (
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/spatial"
	"github.com/jengzang/ghostquant-backend-go/internal/stats"
)

// Arc altitude range as a fraction of the globe radius
const (
	minArcAltitude = 0.05
	maxArcAltitude = 0.5
)

// BuildThreatGlobe places geolocated entities on the globe and draws their
// relationships as great-circle arcs. Nodes without a location are left out,
// and so are edges touching them.
func BuildThreatGlobe(nodes []models.GraphNode, edges []models.GraphEdge) models.ThreatGlobe {
	globe := models.ThreatGlobe{
		Points: make([]models.GlobePoint, 0),
		Arcs:   make([]models.GlobeArc, 0),
	}

	located := make(map[string]models.GraphNode)
	for _, n := range nodes {
		if _, seen := located[n.ID]; seen || !n.HasGeo() {
			continue
		}
		located[n.ID] = n
		risk := stats.Clamp(n.RiskLevel, 0, 1)
		globe.Points = append(globe.Points, models.GlobePoint{
			ID:       n.ID,
			Type:     n.Type,
			Lat:      *n.Lat,
			Lng:      *n.Lng,
			Risk:     n.RiskLevel,
			Altitude: 0.01 + 0.1*risk,
			Color:    ComputeRiskColor(n.RiskLevel),
			Size:     ComputeNodeSize(n.Type, n.RiskLevel),
		})
	}

	for _, e := range edges {
		from, ok := located[e.SourceID]
		if !ok {
			continue
		}
		to, ok := located[e.TargetID]
		if !ok {
			continue
		}

		distance := spatial.HaversineKm(*from.Lat, *from.Lng, *to.Lat, *to.Lng)
		midLat, midLng := spatial.Midpoint(*from.Lat, *from.Lng, *to.Lat, *to.Lng)
		risk := from.RiskLevel
		if to.RiskLevel > risk {
			risk = to.RiskLevel
		}

		globe.Arcs = append(globe.Arcs, models.GlobeArc{
			SourceID:    e.SourceID,
			TargetID:    e.TargetID,
			StartLat:    *from.Lat,
			StartLng:    *from.Lng,
			EndLat:      *to.Lat,
			EndLng:      *to.Lng,
			MidLat:      midLat,
			MidLng:      midLng,
			DistanceKm:  distance,
			ArcAltitude: spatial.ArcAltitude(distance, minArcAltitude, maxArcAltitude),
			Strength:    e.Strength,
			Color:       ComputeRiskColor(risk),
		})
	}

	return globe
}
