package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/service"
	"github.com/jengzang/ghostquant-backend-go/pkg/response"
)

// ConstellationHandler handles HTTP requests for the constellation map and globe
type ConstellationHandler struct {
	service *service.ConstellationService
}

// NewConstellationHandler creates a new constellation handler
func NewConstellationHandler(service *service.ConstellationService) *ConstellationHandler {
	return &ConstellationHandler{service: service}
}

// GetVisual handles GET /api/v1/constellation
func (h *ConstellationHandler) GetVisual(c *gin.Context) {
	var filter models.CanvasFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	visual, err := h.service.Visual(filter.Width, filter.Height, filter.Seed)
	if err != nil {
		serviceError(c, "Failed to build constellation", err)
		return
	}

	response.Success(c, visual)
}

// BuildVisual handles POST /api/v1/constellation
func (h *ConstellationHandler) BuildVisual(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes)

	var req models.ConstellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	graph := models.EntityGraph{Nodes: req.Nodes, Edges: req.Edges}.Sanitize()
	if limit := h.service.MaxNodes(); len(graph.Nodes) > limit {
		response.BadRequest(c, fmt.Sprintf("Too many nodes: %d exceeds limit of %d", len(graph.Nodes), limit), nil)
		return
	}
	visual := h.service.Build(graph.Nodes, graph.Edges, req.Width, req.Height, req.Seed)
	response.Success(c, visual)
}

// GetGlobe handles GET /api/v1/constellation/globe
func (h *ConstellationHandler) GetGlobe(c *gin.Context) {
	globe, err := h.service.Globe()
	if err != nil {
		serviceError(c, "Failed to build threat globe", err)
		return
	}

	response.Success(c, gin.H{
		"points": globe.Points,
		"arcs":   globe.Arcs,
		"count":  len(globe.Points),
	})
}
