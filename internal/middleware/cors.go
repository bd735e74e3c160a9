package middleware

import (
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace        *telemetry.Trace
	allowOrigins []string
}

// NewCors 未設定 CorsAllowOrigins 時允許所有來源
func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	origins := conf.App.CorsAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Cors{trace: trace, allowOrigins: origins}
}

// CorsHandler 跳過 tracing 的路徑仍要套用 CORS，否則 preflight 會失敗
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:  m.allowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowOrigins []string `trace:"http.cors.allow_origins"`
		AllowMethods []string `trace:"http.cors.allow_methods"`
		AllowHeaders []string `trace:"http.cors.allow_headers"`
		ExposeHdrs   []string `trace:"http.cors.expose_headers"`
	}

	return func(c *gin.Context) {
		endpoint := c.FullPath()

		if skipObservability(endpoint) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		defer end(nil)

		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: cfg.AllowMethods,
			AllowHeaders: cfg.AllowHeaders,
			ExposeHdrs:   cfg.ExposeHeaders,
		})

		corsHandler(c)
	}
}
