package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ghostquant-backend-go/internal/handler"
	"github.com/jengzang/ghostquant-backend-go/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Heatmap       *handler.HeatmapHandler
	Constellation *handler.ConstellationHandler
	Stream        *handler.StreamHandler
}

// SetupRouter builds the gin engine with every route mounted.
// A nil limiter disables rate limiting.
func SetupRouter(h Handlers, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GhostQuant risk API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	{
		heatmap := api.Group("/heatmap")
		{
			heatmap.GET("", h.Heatmap.GetLatest)
			heatmap.POST("/aggregate", h.Heatmap.Aggregate)
			heatmap.POST("/spikes", h.Heatmap.DetectSpikes)
			heatmap.GET("/top", h.Heatmap.GetTopItems)
			heatmap.GET("/classify", h.Heatmap.Classify)
			heatmap.GET("/history", h.Heatmap.GetHistory)
		}

		constellation := api.Group("/constellation")
		{
			constellation.GET("", h.Constellation.GetVisual)
			constellation.POST("", h.Constellation.BuildVisual)
			constellation.GET("/globe", h.Constellation.GetGlobe)
		}

		stream := api.Group("/stream")
		{
			stream.GET("/heatmap", h.Stream.StreamHeatmap)
		}
	}

	return r
}
