package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jengzang/ghostquant-backend-go/internal/metrics"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/jengzang/ghostquant-backend-go/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler pushes heatmap views to websocket clients
type StreamHandler struct {
	service *service.HeatmapService
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(service *service.HeatmapService) *StreamHandler {
	return &StreamHandler{service: service}
}

// StreamHeatmap handles GET /api/v1/stream/heatmap.
// The current view is sent on connect, then every refreshed view.
func (h *StreamHandler) StreamHeatmap(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Stream] Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	views, unsubscribe := h.service.Subscribe()
	defer unsubscribe()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	if view, err := h.service.Latest(c.Request.Context()); err == nil {
		if err := writeView(conn, *view); err != nil {
			return
		}
	}

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case view, ok := <-views:
			if !ok {
				return
			}
			if err := writeView(conn, view); err != nil {
				log.Printf("[Stream] Write failed: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeView(conn *websocket.Conn, view models.HeatmapView) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(view)
}

// readPump drains client frames so pongs and close frames are processed
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[Stream] Read failed: %v", err)
			}
			return
		}
	}
}
