package error

const (
	SUCCESS = 0

	// 400xx 請求錯誤
	BAD_REQUEST_BODY   = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS = 40001 // 400 - 無效的路徑 / query 參數

	// 404xx 資源
	NOT_FOUND          = 40400 // 404 - 資源未找到
	PROVIDER_NOT_FOUND = 40401 // 404 - 不支援的 provider
	MODEL_NOT_FOUND    = 40402 // 404 - 目前快取中找不到該模型

	METHOD_NOT_ALLOWED = 40500 // 405

	// 429xx 流量限制
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 強制刷新太頻繁

	// 5xxxx 伺服器
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 呼叫端取消或服務暫停
	GATEWAY_TIMEOUT     = 50400 // 504 - 請求逾時
)
