package catalog

import (
	"context"
	"time"

	"modelhub/internal/core"
)

// VendorClient 呼叫供應商 list models API，回傳原始 payload
type VendorClient interface {
	FetchModels(ctx context.Context) ([]byte, error)
}

// VendorFunc 讓一般函式可以當作 VendorClient
type VendorFunc func(ctx context.Context) ([]byte, error)

func (f VendorFunc) FetchModels(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Vendors 只包含可以實際抓取的 provider；不在表中的走內建清單
type Vendors map[core.ProviderName]VendorClient

// RefreshEvent 每次實際抓取（含失敗）完成後產生一筆
type RefreshEvent struct {
	Provider   core.ProviderName
	Forced     bool
	Source     Source
	ModelCount int
	Err        *ErrorInfo
	Duration   time.Duration
	At         time.Time
}

type RefreshObserver interface {
	ObserveRefresh(ctx context.Context, ev RefreshEvent)
}
