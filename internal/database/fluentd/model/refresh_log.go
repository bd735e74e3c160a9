package model

// RefreshLog 每次目錄實際向供應商抓取（或降級）後送出一筆
type RefreshLog struct {
	Provider   string  `json:"provider"`
	Forced     bool    `json:"forced"`
	Source     string  `json:"source"`
	ModelCount int     `json:"model_count"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	DurationMs float64 `json:"duration_ms"`
	FetchedAt  string  `json:"fetched_at"`
	Version    string  `json:"version,omitempty"`
	LoggedAt   string  `json:"logged_at"`
}
