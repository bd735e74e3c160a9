package client

import (
	"context"
	"fmt"

	"modelhub/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 連接 Redis；未設定 Host 時為停用狀態，Client() 回傳 nil
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	redisClient := &RedisClient{logger: logger}
	if config.Redis.Host == "" {
		logger.Info("Redis disabled, refresh limit is off")
		return redisClient, func() {}, nil
	}

	client, err := redisClient.connectDB(config)
	if err != nil {
		logger.Error("failed to connect to Redis", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to Redis")
	redisClient.client = client

	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}

	return redisClient, cleanup, nil
}

// NewRedisClientFrom 包裝既有連線（測試用 miniredis 等）
func NewRedisClientFrom(logger *zap.Logger, client *redis.Client) *RedisClient {
	return &RedisClient{client: client, logger: logger}
}

func (client *RedisClient) connectDB(config *config.Configuration) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if _, err := r.Ping(context.Background()).Result(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (redisClient *RedisClient) Enabled() bool {
	return redisClient != nil && redisClient.client != nil
}

// Close 關閉 Redis 連線
func (redisClient *RedisClient) Close() error {
	if !redisClient.Enabled() {
		return nil
	}
	return redisClient.client.Close()
}

// Ping 給 readiness 使用；停用時視為正常
func (redisClient *RedisClient) Ping(ctx context.Context) error {
	if !redisClient.Enabled() {
		return nil
	}
	return redisClient.client.Ping(ctx).Err()
}

// Client 回傳 Redis 連線
func (redisClient *RedisClient) Client() *redis.Client {
	if redisClient == nil {
		return nil
	}
	return redisClient.client
}
