package middleware

import (
	"net"
	"strconv"
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳過不追蹤的路徑
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}
		carrier := propagation.HeaderCarrier(c.Request.Header)
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), carrier)
		route := endpoint
		if route == "" {
			route = "unmatched"
		}
		// span 名稱用 route template，避免模型 ID 造成高基數
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(c.Request.Method+" "+route), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)
		requestID := ensureRequestID(c, span.SpanContext())
		c.Header("X-Request-ID", requestID)
		// 計時
		start := time.Now().UTC()
		if _, exists := c.Get("requestDuration"); !exists {
			c.Set("requestDuration", start)
		}

		// peer ip:port
		peerAddr, peerPort := "", 0
		if host, port, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
			peerAddr = host
			if p, err2 := strconv.Atoi(port); err2 == nil {
				peerPort = p
			}
		} else {
			peerAddr = c.ClientIP()
		}

		// ---- 準備 meta（request 部分）----
		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         route,
			UrlPath:           c.Request.URL.Path,
			UrlScheme: func() string {
				if c.Request.TLS != nil {
					return "https"
				}
				return "http"
			}(),
			UserAgent:       c.Request.UserAgent(),
			ServerAddress:   m.conf.App.Name,
			NetworkPeerAddr: peerAddr,
			NetworkPeerPort: peerPort,
			NetworkProtoVer: c.Request.Proto,
			SpanKind:        trace.SpanKindServer.String(),
			SpanTraceID:     span.SpanContext().TraceID().String(),
		}
		// 一次把 request 面向屬性打進 span
		m.trace.ApplyTraceAttributes(span, &meta)

		// ---- 執行後續 ----
		c.Next()

		// 回應狀態與指標
		statusCode := c.Writer.Status()
		meta.HttpStatusCode = statusCode
		m.trace.ApplyTraceAttributes(span, &meta) // 二次打入：補上 status

		// Prometheus
		if m.metric.HttpRequestsTotal != nil && m.metric.HttpRequestDuration != nil {
			duration := time.Since(start)
			m.metric.HttpRequestsTotal.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
			m.metric.HttpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		}

		var spanErr error
		if statusCode >= 500 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.trace.EndSpan(span, spanErr)
	}
}
