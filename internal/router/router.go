package router

import (
	docs "modelhub/cmd/docs"
	"modelhub/config"
	"modelhub/internal/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewCatalogRouter,
	NewHealthRouter,
)

// 透過依賴注入將 middleware 與各模組路由組成 gin.Engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	catalogRouter *CatalogRouter,
	healthRouter *HealthRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	// 模型 ID 可能含 "/"（openrouter），以 %2F 傳入時仍對應到單一路徑參數
	router.UseRawPath = true
	router.UnescapePathValues = true

	// 必須在註冊任何路由之前掛上，否則不會套用到既有路由
	router.Use(versionHeader(config.App.Version))
	router.Use(traceEntry.Handler())
	router.Use(logger.LoggerHandler())
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(responseMiddleware.FormatHandler())
	if config.Telemetry.Metric.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if config.App.SwaggerEnabled {
		router.GET("/swagger/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host

			if config.App.Env == "production" {
				docs.SwaggerInfo.Schemes = []string{"https"}
			}
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	catalogRouter.RegisterRoutes(router)
	healthRouter.RegisterRoutes(router)
	if config.App.Env != "production" {
		pprof.Register(router)
	}
	return router
}

func versionHeader(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if version != "" {
			c.Header("X-App-Version", version)
		}
		c.Next()
	}
}
