package catalog

import (
	"context"
	"sync"

	"modelhub/internal/core"

	"golang.org/x/sync/singleflight"
)

type fetchFunc func(ctx context.Context) (ProviderCatalog, error)

// Coordinator 同一 provider 同時只會有一次抓取，其餘呼叫端共用結果。
// 抓取本身不綁定任何單一呼叫端的 ctx：先來的人取消不會讓後到的人失敗。
type Coordinator struct {
	group singleflight.Group

	mu      sync.Mutex
	waiters map[core.ProviderName]int

	// 等待人數變動時通知（metric gauge）；不可再呼叫 Coordinator 的方法
	onWait func(p core.ProviderName, n int)
}

func NewCoordinator() *Coordinator {
	return &Coordinator{waiters: make(map[core.ProviderName]int)}
}

// FetchOnce shared=true 代表結果來自其他呼叫端發起的同一次抓取
func (c *Coordinator) FetchOnce(ctx context.Context, p core.ProviderName, fn fetchFunc) (ProviderCatalog, bool, error) {
	ch := c.group.DoChan(string(p), func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx))
	})
	c.addWaiter(p, 1)
	defer c.addWaiter(p, -1)

	select {
	case <-ctx.Done():
		return ProviderCatalog{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return ProviderCatalog{}, res.Shared, res.Err
		}
		return res.Val.(ProviderCatalog).clone(), res.Shared, nil
	}
}

// Waiters 目前正在等待 p 抓取結果的呼叫端數
func (c *Coordinator) Waiters(p core.ProviderName) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiters[p]
}

// addWaiter onWait 在持有鎖時呼叫，gauge 的更新順序才會與計數一致
func (c *Coordinator) addWaiter(p core.ProviderName, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiters[p] += delta
	n := c.waiters[p]
	if n == 0 {
		delete(c.waiters, p)
	}
	if c.onWait != nil {
		c.onWait(p, n)
	}
}
