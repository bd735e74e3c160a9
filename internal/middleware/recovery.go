package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/fluentd/model"
	"modelhub/internal/database/fluentd/repository"
	cErr "modelhub/internal/pkg/error"
	res "modelhub/internal/pkg/response"
	"modelhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}

		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)

				ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
				requestID := ensureRequestID(c, span.SpanContext())

				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}
				middleware.trace.ApplyTraceAttributes(span, meta)

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.String("user_agent", meta.UserAgent),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("requestId", requestID),
				)

				err := cErr.InternalServer("unexpected panic")
				end(err)
				// 尚未回寫才輸出
				if !c.Writer.Written() {
					res.FailByErr(c, requestID, err)
				}
				middleware.logResponse(ctx, c, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message, duration)
				c.Abort()
			}
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
		requestID := ensureRequestID(c, span.SpanContext())

		// 找第一個 *cErr.Error
		for _, e := range c.Errors {
			appErr, ok := e.Err.(*cErr.Error)
			if !ok {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			middleware.logger.Warn(appErr.Error(),
				zap.Int("code", appErr.ErrorCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.Duration("duration", duration),
				zap.String("requestId", requestID),
			)
			end(appErr)
			res.FailByErr(c, requestID, appErr)
			middleware.logResponse(ctx, c, requestID, appErr.ErrorCode(), appErr.HttpCode(), appErr.ErrorDesc(), duration)
			c.Abort()
			return
		}

		// 其餘未知錯誤
		unknown := c.Errors.String()
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     toSafeString(unknown),
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		middleware.logger.Warn("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
		)
		end(c.Errors.Last().Err)
		res.Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
		middleware.logResponse(ctx, c, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, toSafeString(unknown), duration)
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, c *gin.Context, requestID string, code, status int, msg string, duration time.Duration) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		Path:       c.Request.URL.Path,
		Code:       code,
		StatusCode: status,
		Error:      msg,
		DurationMs: float64(duration.Microseconds()) / 1000,
		ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		Version:    middleware.config.App.Version,
	})
	if err != nil {
		middleware.logger.Warn("[Fluentd] response log failed", zap.Error(err))
	}
}

// ensureRequestID 同一個請求只產生一次，TraceEntry 會先放進 gin.Context
func ensureRequestID(c *gin.Context, sc trace.SpanContext) string {
	if v, ok := c.Get(core.ContextRequestIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	id := requestIDOf(sc)
	c.Set(core.ContextRequestIDKey, id)
	return id
}

// requestIDOf 有 trace 時用 traceID，否則產生 UUIDv7
func requestIDOf(sc trace.SpanContext) string {
	if sc.HasTraceID() {
		return sc.TraceID().String()
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
