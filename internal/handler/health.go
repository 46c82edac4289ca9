package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store     Pinger
	driver    string
	startTime time.Time
	version   string
}

func NewHealthHandler(store Pinger, driver string, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		driver:    driver,
		startTime: startTime,
		version:   version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  int64(uptime.Seconds()),
	})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Reports whether the configured store answers a ping
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store": gin.H{
				"driver": h.driver,
				"status": "down",
				"error":  err.Error(),
			},
		})
		return
	}

	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"version": h.version,
		"uptime":  int64(uptime.Seconds()),
		"store": gin.H{
			"driver": h.driver,
			"status": "up",
		},
	})
}
