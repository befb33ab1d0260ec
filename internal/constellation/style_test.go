package constellation

import (
	"testing"

	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeRiskColor(t *testing.T) {
	assert.Equal(t, heatmap.ColorCritical, ComputeRiskColor(0.95))
	assert.Equal(t, heatmap.ColorMinimal, ComputeRiskColor(0.01))
}

func TestComputeNodeSize(t *testing.T) {
	assert.Equal(t, 12.0, ComputeNodeSize(models.NodeInstitution, 0))
	assert.Equal(t, 24.0, ComputeNodeSize(models.NodeInstitution, 1))
	assert.Equal(t, 24.0, ComputeNodeSize(models.NodeInstitution, 3))
	assert.Equal(t, 6.0, ComputeNodeSize("mystery", -1))

	assert.Greater(t, ComputeNodeSize(models.NodeWallet, 0.9), ComputeNodeSize(models.NodeWallet, 0.2))
	assert.Greater(t, ComputeNodeSize(models.NodeInstitution, 0.5), ComputeNodeSize(models.NodeWallet, 0.5))
}
