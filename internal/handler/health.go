package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	startedAt   time.Time
	environment string
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		environment: environment,
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uptime":      time.Since(h.startedAt).Seconds(),
		"message":     "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}
