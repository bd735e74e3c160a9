package service

import (
	"context"
	"sync/atomic"
	"time"

	"modelhub/internal/database/client"
	"modelhub/internal/service/catalog"
)

const readinessPingTimeout = time.Second

type HealthService struct {
	live     atomic.Bool
	ready    atomic.Bool
	redis    *client.RedisClient
	registry *catalog.Registry
}

// HealthReport readiness 的細節；Redis 未設定時為 "disabled"
type HealthReport struct {
	Ready         bool   `json:"ready"`
	Redis         string `json:"redis"`
	CachedCatalog int    `json:"cachedCatalogs"`
}

func NewHealthService(redis *client.RedisClient, registry *catalog.Registry) *HealthService {
	s := &HealthService{redis: redis, registry: registry}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Check 目錄快取不影響 readiness（冷啟動時可以是 0）；Redis 連不上則視為未就緒
func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{Ready: s.IsReady(), Redis: "disabled"}
	if s.registry != nil {
		report.CachedCatalog = len(s.registry.Cached())
	}
	if s.redis.Enabled() {
		ctx, cancel := context.WithTimeout(ctx, readinessPingTimeout)
		defer cancel()
		if err := s.redis.Ping(ctx); err != nil {
			report.Redis = "error"
			report.Ready = false
		} else {
			report.Redis = "ok"
		}
	}
	return report
}
