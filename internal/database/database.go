package database

import (
	client "modelhub/internal/database/client"
	fluentdRepo "modelhub/internal/database/fluentd/repository"
	redisRepo "modelhub/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewRedisClient,
	client.NewFluentdClient,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
