package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/redis/repository"
	cErr "modelhub/internal/pkg/error"
	"modelhub/internal/pkg/response"
	"modelhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefreshLimit 限制每個 client IP 對同一個 provider 的強制刷新次數；
// 未設定 Redis 或 Count <= 0 時直接放行
type RefreshLimit struct {
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	logger     *zap.Logger
	repository *repository.RefreshLimitRepository
	limit      config.RefreshLimit
}

func NewRefreshLimit(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	repository *repository.RefreshLimitRepository,
) *RefreshLimit {
	limit := conf.Catalog.RefreshLimit
	if limit.WindowSeconds <= 0 {
		limit.WindowSeconds = 60
	}
	return &RefreshLimit{trace: trace, metric: metric, logger: logger, repository: repository, limit: limit}
}

func (m *RefreshLimit) Enabled() bool {
	return m.limit.Count > 0 && m.repository.Enabled()
}

func (m *RefreshLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !forcesRefresh(c) {
			c.Next()
			return
		}
		if !m.Enabled() {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanRefreshLimitMiddleware))
		provider := strings.ToLower(strings.TrimSpace(c.Param("provider")))
		if !core.IsValidProviderName(provider) {
			// 交給 handler 回 404
			end(nil)
			c.Next()
			return
		}
		clientIP := c.ClientIP()

		remaining, ttlSec, err := m.repository.Consume(ctx, clientIP, core.ProviderName(provider), m.limit.Count, m.limit.WindowSeconds)
		blocked := errors.Is(err, repository.ErrRefreshLimitExceeded)
		if err != nil && !blocked {
			// Redis 異常不阻斷刷新
			m.logger.Warn("[RefreshLimit] redis error, allowing request",
				zap.String("provider", provider),
				zap.Error(err),
			)
			end(err)
			c.Next()
			return
		}

		// 寫入回應標頭，方便呼叫端與排錯
		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limit.Count))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		m.trace.ApplyTraceAttributes(span, core.TraceRefreshLimitMiddlewareMeta{
			ClientIP:    clientIP,
			Provider:    provider,
			ConfigLimit: m.limit.Count,
			Remaining:   remaining,
			TTLSeconds:  ttlSec,
			Blocked:     blocked,
		})

		if blocked {
			if m.metric.RefreshLimitedTotal != nil {
				m.metric.RefreshLimitedTotal.WithLabelValues(provider).Inc()
			}
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			appErr := cErr.RateLimitExceeded("refresh limit exceeded for " + provider)
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		}
		end(nil)
		c.Next()
	}
}

// forcesRefresh 與 gin 綁定 bool 的規則一致（strconv.ParseBool），無法解析時不算強制刷新
func forcesRefresh(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.Query("refresh"))
	return err == nil && v
}
