package router

import (
	"modelhub/internal/handler"
	"modelhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CatalogRouter struct {
	catalogHandler         *handler.CatalogHandler
	refreshLimitMiddleware *middleware.RefreshLimit
}

func NewCatalogRouter(
	catalogHandler *handler.CatalogHandler,
	refreshLimitMiddleware *middleware.RefreshLimit,
) *CatalogRouter {
	return &CatalogRouter{
		catalogHandler:         catalogHandler,
		refreshLimitMiddleware: refreshLimitMiddleware,
	}
}

func (r *CatalogRouter) RegisterRoutes(engine *gin.Engine) {
	v1 := engine.Group("/catalog/v1")
	{
		v1.GET("/providers", r.catalogHandler.ListProviders)
		v1.GET("/providers/:provider/models", r.refreshLimitMiddleware.Guard(), r.catalogHandler.ListProviderModels)
		v1.GET("/providers/:provider/models/:model", r.catalogHandler.GetProviderModel)
		v1.POST("/providers/:provider/refresh", r.refreshLimitMiddleware.Guard(), r.catalogHandler.RefreshProvider)
		v1.GET("/models", r.catalogHandler.ListAllModels)
		v1.GET("/models/:model/provider", r.catalogHandler.FindModelProvider)
	}
}
