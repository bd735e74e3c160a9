package handler

import (
	"net/http"

	"modelhub/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthStatus *service.HealthService
}

func NewHealthHandler(status *service.HealthService) *HealthHandler {
	return &HealthHandler{healthStatus: status}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.healthStatus.Check(c.Request.Context())
	if report.Ready {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "detail": report})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "detail": report})
}
