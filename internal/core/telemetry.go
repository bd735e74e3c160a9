package core

const (
	ContextTraceKey     = "telemetry_trace_ctx"
	ContextRequestIDKey = "request_id"
)

// TraceSpanName 固定名稱的 span；HTTP server span 以 "METHOD route" 動態命名
type TraceSpanName string

const (
	SpanLoggerMiddleware       TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware     TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware         TraceSpanName = "cors_middleware"
	SpanResponseMiddleware     TraceSpanName = "response_middleware"
	SpanRefreshLimitMiddleware TraceSpanName = "refresh_limit_middleware"
	SpanCatalogFetch           TraceSpanName = "catalog.fetch"
	SpanVendorList             TraceSpanName = "vendor.models.list"
)

// MetricName 不含 namespace，由 Metric 依 App.Name 加前綴
type MetricName string

const (
	MetricHttpRequestsTotal    MetricName = "requests_total"
	MetricHttpRequestDuration  MetricName = "request_duration_seconds"
	MetricCatalogFetchTotal    MetricName = "catalog_fetch_total"
	MetricCatalogFetchDuration MetricName = "catalog_fetch_duration_seconds"
	MetricCatalogLookupTotal   MetricName = "catalog_lookup_total"
	MetricCatalogFetchWaiters  MetricName = "catalog_fetch_waiters"
	MetricRefreshLimitedTotal  MetricName = "catalog_refresh_limited_total"
)

type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelProvider MetricLabelName = "provider"
	MetricLabelResult   MetricLabelName = "result"
	MetricLabelOutcome  MetricLabelName = "outcome"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

// ---- 以下為各層寫入 span 的屬性，tag 格式為 trace:"key[,omitempty]" ----

// TraceRateLimitMeta Redis 固定視窗計數
type TraceRateLimitMeta struct {
	ClientKey string `trace:"rl.client_key"`
	Provider  string `trace:"rl.provider"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"`
}

type TraceRefreshLimitMiddlewareMeta struct {
	ClientIP    string `trace:"refresh_limit.client_ip"`
	Provider    string `trace:"refresh_limit.provider"`
	ConfigLimit int    `trace:"refresh_limit.config.limit"`
	Remaining   int    `trace:"refresh_limit.remaining"`
	TTLSeconds  int64  `trace:"refresh_limit.ttl_sec"`
	Blocked     bool   `trace:"refresh_limit.blocked"`
}

type TraceCatalogFetchMeta struct {
	Provider   string  `trace:"catalog.provider"`
	Forced     bool    `trace:"catalog.forced"`
	Source     string  `trace:"catalog.source"`
	ModelCount int     `trace:"catalog.model_count"`
	ErrorKind  string  `trace:"catalog.error_kind"`
	DurationMs float64 `trace:"catalog.fetch_latency_ms"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}
