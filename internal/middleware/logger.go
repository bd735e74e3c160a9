package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/fluentd/model"
	"modelhub/internal/database/fluentd/repository"
	"modelhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 這些 header 不寫進 log 與 trace
var redactedHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄每個請求；目錄 API 沒有 request body，只記 path/query/params/header
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		requestTime := time.Now().UTC()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		// headers → map[string]string（lowercase key）
		headerMap := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			lk := strings.ToLower(k)
			if redactedHeaders[lk] {
				headerMap[lk] = "[redacted]"
				continue
			}
			headerMap[lk] = strings.Join(v, ",")
		}

		// path params
		paramsMap := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			paramsMap[p.Key] = p.Value
		}

		meta := core.LoggerRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   endpoint,
			Query:      query,
			Scheme:     c.Request.URL.Scheme,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
			Params:     paramsMap,
		}
		m.trace.ApplyTraceAttributes(span, meta)

		logFields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if len(paramsMap) > 0 {
			logFields = append(logFields, zap.Any("params", paramsMap))
		}
		logFields = append(logFields, zap.String("spanId", fmt.Sprintf("%x", spanID[:])))
		logFields = append(logFields, zap.String("traceId", fmt.Sprintf("%x", traceID[:])))

		m.logger.Info("[Request] logging middleware message", logFields...)

		if err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID: fmt.Sprintf("%x", traceID[:]),
			Method:    method,
			Path:      path,
			Query:     query,
			RequestTS: requestTime.Format("2006-01-02 15:04:05.999999 UTC"),
			IPHash:    hashIP(c.ClientIP()),
			UserAgent: c.Request.UserAgent(),
			Version:   m.config.App.Version,
		}); err != nil {
			m.logger.Warn("[Fluentd] request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
