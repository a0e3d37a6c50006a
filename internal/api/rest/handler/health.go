package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks the persistence store's reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the liveness probe.
type Health struct {
	db Pinger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

// Handle reports the service status and current timestamp. A failing
// database ping degrades the status but keeps the probe answering 200.
func (h *Health) Handle(c *gin.Context) {
	status := "ok"
	database := "ok"
	if err := h.db.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		database = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
