package service

import (
	"modelhub/internal/service/catalog"
	"modelhub/internal/service/models"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	models.NewVendors,
	catalog.NewStaticFallback,
	wire.Bind(new(catalog.FallbackSource), new(*catalog.StaticFallback)),
	NewRefreshLogger,
	wire.Bind(new(catalog.RefreshObserver), new(*RefreshLogger)),
	catalog.NewRegistry,
	NewCatalogService,
)
