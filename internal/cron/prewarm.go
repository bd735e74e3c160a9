package cron

import (
	"context"
	"time"

	"modelhub/internal/service"
)

// 單輪 prewarm 的上限；個別 provider 仍受自己的 timeout 限制
const prewarmTimeout = 2 * time.Minute

// PrewarmJob 依 TTL 規則預先載入所有 provider 的目錄
type PrewarmJob struct {
	catalogService *service.CatalogService
}

func NewPrewarmJob(catalogService *service.CatalogService) *PrewarmJob {
	return &PrewarmJob{catalogService: catalogService}
}

func (j *PrewarmJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), prewarmTimeout)
	defer cancel()
	j.catalogService.Prewarm(ctx)
}
