package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/internal/services"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	queue services.ExportQueue
}

func NewHealthHandler(queue services.ExportQueue) *HealthHandler {
	return &HealthHandler{queue: queue}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "openmelody",
		"components": gin.H{
			"database":   dbStatus,
			"queue_mode": queueMode,
		},
	})
}
