package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/service"
	"github.com/jengzang/ghostquant-backend-go/pkg/response"
)

// maxPayloadBytes caps posted heatmap and graph bodies
const maxPayloadBytes = 4 << 20

// HeatmapHandler handles HTTP requests for heatmap data
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetLatest handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetLatest(c *gin.Context) {
	view, err := h.service.Latest(c.Request.Context())
	if err != nil {
		serviceError(c, "Failed to get heatmap", err)
		return
	}

	response.Success(c, view)
}

// Aggregate handles POST /api/v1/heatmap/aggregate
func (h *HeatmapHandler) Aggregate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		response.BadRequest(c, "Failed to read request body", err)
		return
	}

	raw, err := models.ParseHeatmapRaw(body)
	if err != nil {
		response.BadRequest(c, "Invalid heatmap payload", err)
		return
	}

	agg := heatmap.Aggregate(raw, time.Now().UTC())
	response.Success(c, gin.H{
		"heatmap":      agg,
		"global_level": heatmap.ClassifyRisk(agg.GlobalRisk),
	})
}

// DetectSpikes handles POST /api/v1/heatmap/spikes
func (h *HeatmapHandler) DetectSpikes(c *gin.Context) {
	var req models.SpikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	spikes := heatmap.DetectSpikes(req.Current, req.Previous)
	response.Success(c, gin.H{
		"spikes": spikes,
		"count":  len(spikes),
	})
}

// GetTopItems handles GET /api/v1/heatmap/top
func (h *HeatmapHandler) GetTopItems(c *gin.Context) {
	var filter models.TopItemsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	if !models.IsLayerName(filter.Layer) {
		response.BadRequest(c, "Unknown layer: "+filter.Layer, nil)
		return
	}

	// Default limit
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	view, err := h.service.Latest(c.Request.Context())
	if err != nil {
		serviceError(c, "Failed to get heatmap", err)
		return
	}

	layer, _ := view.Heatmap.Layer(filter.Layer)
	items := heatmap.TopItems(layer, filter.Limit)
	response.Success(c, gin.H{
		"layer": filter.Layer,
		"items": items,
		"count": len(items),
	})
}

// Classify handles GET /api/v1/heatmap/classify
func (h *HeatmapHandler) Classify(c *gin.Context) {
	var filter models.ClassifyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	response.Success(c, heatmap.ClassifyRisk(*filter.Score))
}

// GetHistory handles GET /api/v1/heatmap/history
func (h *HeatmapHandler) GetHistory(c *gin.Context) {
	var filter models.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	history, err := h.service.History(c.Request.Context(), filter.Limit)
	if err != nil {
		response.InternalError(c, "Failed to get snapshot history", err)
		return
	}

	response.Success(c, gin.H{
		"data":  history,
		"count": len(history),
	})
}

// serviceError maps service errors onto status codes
func serviceError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrNotReady) {
		response.Error(c, http.StatusServiceUnavailable, "Data is still loading, try again shortly", err)
		return
	}
	response.InternalError(c, message, err)
}
