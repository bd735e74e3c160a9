package catalog

import (
	"time"

	"modelhub/internal/core"
)

// Source 標示目錄資料的來源
type Source string

const (
	// 供應商 API 回傳並正規化的資料
	SourceLive Source = "live"
	// 抓取失敗且沒有任何舊資料時改用的內建清單
	SourceFallback Source = "fallback"
	// 供應商沒有 list endpoint（或未設定金鑰），固定使用內建清單
	SourceStatic Source = "static"
)

// Capabilities 每個欄位 nil 代表供應商沒有提供
type Capabilities struct {
	ToolCalling      *bool    `json:"toolCalling,omitempty" yaml:"toolCalling,omitempty"`
	Streaming        *bool    `json:"streaming,omitempty" yaml:"streaming,omitempty"`
	Vision           *bool    `json:"vision,omitempty" yaml:"vision,omitempty"`
	InputModalities  []string `json:"inputModalities,omitempty" yaml:"inputModalities,omitempty"`
	OutputModalities []string `json:"outputModalities,omitempty" yaml:"outputModalities,omitempty"`
}

// Pricing 單位一律為 USD / 每百萬 token
type Pricing struct {
	InputPerMTok  *float64 `json:"inputPerMTok,omitempty" yaml:"inputPerMTok,omitempty"`
	OutputPerMTok *float64 `json:"outputPerMTok,omitempty" yaml:"outputPerMTok,omitempty"`
}

// ModelRecord 正規化後的單一模型；建立後不再修改
type ModelRecord struct {
	ID              string        `json:"id" yaml:"id"`
	ProviderModelID string        `json:"providerModelId" yaml:"providerModelId"`
	DisplayName     string        `json:"displayName" yaml:"displayName"`
	OwnedBy         string        `json:"ownedBy" yaml:"ownedBy"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	ContextLength   *int          `json:"contextLength,omitempty" yaml:"contextLength,omitempty"`
	Capabilities    *Capabilities `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Pricing         *Pricing      `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	MaxTokens       *int          `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
}

// ErrorInfo 最近一次抓取失敗的摘要
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ProviderCatalog 單一 provider 的快取內容。
// Models 保留供應商回傳的順序；空清單是合法狀態。
// LastUpdated 為零值代表從未成功抓取過（fallback），一律視為過期。
type ProviderCatalog struct {
	Provider    core.ProviderName `json:"provider"`
	Models      []ModelRecord     `json:"models"`
	LastUpdated time.Time         `json:"lastUpdated"`
	TTLMs       int64             `json:"ttlMs"`
	LastError   *ErrorInfo        `json:"lastError,omitempty"`
	Source      Source            `json:"source"`
}

func (c ProviderCatalog) TTL() time.Duration {
	return time.Duration(c.TTLMs) * time.Millisecond
}

// clone 深複製；快取內容與呼叫端之間不共用任何 slice 或指標
func (c ProviderCatalog) clone() ProviderCatalog {
	out := c
	out.Models = cloneModels(c.Models)
	if c.LastError != nil {
		e := *c.LastError
		out.LastError = &e
	}
	return out
}

func (c ProviderCatalog) hasModel(modelID string) bool {
	for _, m := range c.Models {
		if m.ID == modelID || m.ProviderModelID == modelID {
			return true
		}
	}
	return false
}

func cloneModels(in []ModelRecord) []ModelRecord {
	out := make([]ModelRecord, len(in))
	for i, m := range in {
		out[i] = m.clone()
	}
	return out
}

func (m ModelRecord) clone() ModelRecord {
	out := m
	out.CreatedAt = clonePtr(m.CreatedAt)
	out.ContextLength = clonePtr(m.ContextLength)
	out.MaxTokens = clonePtr(m.MaxTokens)
	if m.Capabilities != nil {
		caps := *m.Capabilities
		caps.ToolCalling = clonePtr(caps.ToolCalling)
		caps.Streaming = clonePtr(caps.Streaming)
		caps.Vision = clonePtr(caps.Vision)
		caps.InputModalities = cloneStrings(caps.InputModalities)
		caps.OutputModalities = cloneStrings(caps.OutputModalities)
		out.Capabilities = &caps
	}
	if m.Pricing != nil {
		out.Pricing = &Pricing{
			InputPerMTok:  clonePtr(m.Pricing.InputPerMTok),
			OutputPerMTok: clonePtr(m.Pricing.OutputPerMTok),
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
