package service

import (
	"context"
	"time"

	"modelhub/internal/database/fluentd/model"
	fluentdRepo "modelhub/internal/database/fluentd/repository"
	"modelhub/internal/service/catalog"

	"go.uber.org/zap"
)

// RefreshLogger 把每次目錄抓取結果送到 Fluentd（未設定 Fluentd 時為 noop）
type RefreshLogger struct {
	logger  *zap.Logger
	logRepo *fluentdRepo.LogRepository
}

var _ catalog.RefreshObserver = (*RefreshLogger)(nil)

func NewRefreshLogger(logger *zap.Logger, logRepo *fluentdRepo.LogRepository) *RefreshLogger {
	return &RefreshLogger{logger: logger, logRepo: logRepo}
}

func (l *RefreshLogger) ObserveRefresh(ctx context.Context, ev catalog.RefreshEvent) {
	rec := model.RefreshLog{
		Provider:   string(ev.Provider),
		Forced:     ev.Forced,
		Source:     string(ev.Source),
		ModelCount: ev.ModelCount,
		DurationMs: float64(ev.Duration.Microseconds()) / 1000,
		FetchedAt:  ev.At.UTC().Format(time.RFC3339Nano),
	}
	if ev.Err != nil {
		rec.ErrorKind = string(ev.Err.Kind)
		rec.Error = ev.Err.Message
	}
	if err := l.logRepo.LogRefresh(ctx, rec); err != nil {
		l.logger.Warn("[Fluentd] refresh log failed", zap.String("provider", rec.Provider), zap.Error(err))
	}
}
