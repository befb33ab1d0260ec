package constellation

import (
	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/stats"
)

// Base node radius in pixels per entity type
var baseNodeSize = map[models.NodeType]float64{
	models.NodeInstitution: 12,
	models.NodeExchange:    11,
	models.NodeWhale:       10,
	models.NodeContract:    8,
	models.NodeWallet:      6,
}

const defaultNodeSize = 6.0

// ComputeRiskColor returns the display color for a risk level
func ComputeRiskColor(risk float64) string {
	return heatmap.RiskColor(risk)
}

// ComputeNodeSize returns the node radius: the type's base size scaled by risk,
// up to twice the base size at risk 1
func ComputeNodeSize(nodeType models.NodeType, risk float64) float64 {
	base, ok := baseNodeSize[nodeType]
	if !ok {
		base = defaultNodeSize
	}
	if risk != risk {
		risk = 0
	}
	return base * (1 + stats.Clamp(risk, 0, 1))
}
