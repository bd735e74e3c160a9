package router

import (
	"net/http"

	"modelhub/internal/handler"
	"modelhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// HealthRouter k8s 探針與相容用的 /health-check
type HealthRouter struct {
	healthHandler *handler.HealthHandler
}

func NewHealthRouter(healthHandler *handler.HealthHandler) *HealthRouter {
	return &HealthRouter{healthHandler: healthHandler}
}

func (hr *HealthRouter) RegisterRoutes(r *gin.Engine) {
	// 舊版負載平衡器仍打這個路徑
	r.GET("/health-check", func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusOK, response.Response{
			Data:        "ok",
			Message:     "success",
			Description: "service is alive",
		})
	})

	g := r.Group("/health")
	g.GET("/liveness", hr.healthHandler.Liveness)
	g.GET("/readiness", hr.healthHandler.Readiness)
}
