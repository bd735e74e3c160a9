package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/fluentd/model"
	"modelhub/internal/database/fluentd/repository"
	cErr "modelhub/internal/pkg/error"
	"modelhub/internal/pkg/response"
	"modelhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}

		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set("requestDuration", requestTime)
		}

		// 執行下游
		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		// 以「下游結束後」的狀態碼為準
		statusCode := c.Writer.Status()

		// 若 status >= 400：轉為應用錯誤交給 Recovery 統一輸出
		if statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, "request error"))
			return
		}

		// 沒有 handler 設定 data 的路徑（例如 404 前的 OPTIONS）不包裝
		data, exists := c.Get("data")
		if !exists {
			return
		}

		// ---- 成功回應路徑 ----
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		if data == nil {
			data = map[string]any{}
		}
		msg, _ := c.Get("message")
		message := "Request Success"
		if s, ok := msg.(string); ok && s != "" {
			message = s
		}

		duration := time.Since(requestTime)
		requestID := ensureRequestID(c, span.SpanContext())

		// 封裝統一回應
		res := response.Response{
			RequestID:   requestID,
			Code:        0,
			Data:        data,
			Message:     "OK",
			Description: message,
		}
		jsonBytes, err := json.Marshal(res)
		if err != nil {
			// Marshal 失敗視為 500，交給 Recovery 處理
			end(err)
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		// Trace Meta
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			Code:       0,
			DurationMs: float64(duration.Milliseconds()),
			Data:       safePreview(jsonBytes, 2000),
		})

		// Log
		middleware.logger.Info("[Response] "+message,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.Int("bytes", len(jsonBytes)),
			zap.String("requestId", requestID),
		)

		//fluentd；完整目錄可能很大，只送預覽
		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  requestID,
			Path:       c.Request.URL.Path,
			Code:       0,
			StatusCode: statusCode,
			Body:       safePreview(jsonBytes, 4000),
			DurationMs: float64(duration.Microseconds()) / 1000,
			ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
			Version:    middleware.config.App.Version,
		}); err != nil {
			middleware.logger.Warn("[Fluentd] response log failed", zap.Error(err))
		}

		// 輸出 JSON
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Writer.WriteHeader(statusCode) // 例如 handler 可能設了 201
		if _, werr := c.Writer.Write(jsonBytes); werr != nil {
			middleware.logger.Warn("[Response] write failed", zap.Error(werr), zap.String("requestId", requestID))
		}
	}
}

// safePreview 截斷過長的 JSON，避免 trace / log 爆量
func safePreview(b []byte, max int) string {
	if len(b) > max {
		return fmt.Sprintf("%s…(%d bytes)", b[:max], len(b))
	}
	return string(b)
}
