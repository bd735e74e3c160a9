//go:build wireinject
// +build wireinject

package main

import (
	"modelhub/config"
	"modelhub/internal/command"
	"modelhub/internal/cron"
	"modelhub/internal/database"
	"modelhub/internal/handler"
	"modelhub/internal/middleware"
	"modelhub/internal/router"
	"modelhub/internal/service"
	"modelhub/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init cli commands.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			newHttpClient,
			command.ProviderSet,
		),
	)
}
