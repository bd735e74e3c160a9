package handler

import (
	"github.com/google/wire"
)

// ProviderSet HTTP handler 集合
var ProviderSet = wire.NewSet(
	NewCatalogHandler,
	NewHealthHandler,
)
