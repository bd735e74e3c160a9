package core

type RedisKey string
type FluentdSubTag string

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName   RedisKey = "modelhub"        // 伺服器名稱
	RedisKeyRefreshLimit RedisKey = "catalog_refresh" // 強制刷新節流
)

const (
	FluentdRequest        FluentdSubTag = "request_log"
	FluentdResponse       FluentdSubTag = "response_log"
	FluentdCatalogRefresh FluentdSubTag = "catalog_refresh_log"
)
