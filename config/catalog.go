package config

import "time"

const (
	DefaultCatalogTTLMs     int64 = 24 * 60 * 60 * 1000
	DefaultCatalogTimeoutMs int64 = 10 * 1000
)

type Catalog struct {
	// 所有 provider 共用的預設值（單一 provider 未設定時使用）
	DefaultTTLMs     int64 `mapstructure:"DEFAULT_TTL_MS" json:"defaultTtlMs" yaml:"defaultTtlMs"`
	DefaultTimeoutMs int64 `mapstructure:"DEFAULT_TIMEOUT_MS" json:"defaultTimeoutMs" yaml:"defaultTimeoutMs"`
	// 例如 "0 */30 * * * *"；空字串代表只做 lazy 刷新
	PrewarmCron  string                     `mapstructure:"PREWARM_CRON" json:"prewarmCron" yaml:"prewarmCron"`
	RefreshLimit RefreshLimit               `mapstructure:"REFRESH_LIMIT" json:"refreshLimit" yaml:"refreshLimit"`
	Providers    map[string]CatalogProvider `mapstructure:"PROVIDERS" json:"providers" yaml:"providers"`
}

type CatalogProvider struct {
	TTLMs     int64  `mapstructure:"TTL_MS" json:"ttlMs" yaml:"ttlMs"`
	TimeoutMs int64  `mapstructure:"TIMEOUT_MS" json:"timeoutMs" yaml:"timeoutMs"`
	APIKey    string `mapstructure:"API_KEY" json:"-" yaml:"apiKey"`
	BaseURL   string `mapstructure:"BASE_URL" json:"baseUrl" yaml:"baseUrl"`
	// 每分鐘對供應商發出的 list 請求上限，0 = 不限
	RatePerMinute int  `mapstructure:"RATE_PER_MINUTE" json:"ratePerMinute" yaml:"ratePerMinute"`
	Disabled      bool `mapstructure:"DISABLED" json:"disabled" yaml:"disabled"`
}

// 強制刷新 API 的節流（每個 client IP + provider 一個視窗）
type RefreshLimit struct {
	Count         int   `mapstructure:"COUNT" json:"count" yaml:"count"`
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
}

func (c Catalog) Provider(name string) CatalogProvider {
	if c.Providers == nil {
		return CatalogProvider{}
	}
	return c.Providers[name]
}

// TTL 取得 provider 的快取時間；fallbackMs 為該 provider 的內建預設
func (c Catalog) TTL(name string, fallbackMs int64) time.Duration {
	if p := c.Provider(name); p.TTLMs > 0 {
		return time.Duration(p.TTLMs) * time.Millisecond
	}
	if fallbackMs > 0 {
		return time.Duration(fallbackMs) * time.Millisecond
	}
	if c.DefaultTTLMs > 0 {
		return time.Duration(c.DefaultTTLMs) * time.Millisecond
	}
	return time.Duration(DefaultCatalogTTLMs) * time.Millisecond
}

func (c Catalog) Timeout(name string) time.Duration {
	if p := c.Provider(name); p.TimeoutMs > 0 {
		return time.Duration(p.TimeoutMs) * time.Millisecond
	}
	if c.DefaultTimeoutMs > 0 {
		return time.Duration(c.DefaultTimeoutMs) * time.Millisecond
	}
	return time.Duration(DefaultCatalogTimeoutMs) * time.Millisecond
}
