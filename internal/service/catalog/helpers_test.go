package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/telemetry"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const openAIThreeModels = `{
  "object": "list",
  "data": [
    {"id": "gpt-4o", "object": "model", "created": 1715367049, "owned_by": "system"},
    {"id": "gpt-4o-mini", "object": "model", "created": 1721172741, "owned_by": "system"},
    {"id": "o3-mini", "object": "model", "created": 1737146383, "owned_by": "system"}
  ]
}`

const anthropicTwoModels = `{
  "data": [
    {"type": "model", "id": "claude-3-7-sonnet-20250219", "display_name": "Claude 3.7 Sonnet", "created_at": "2025-02-19T00:00:00Z"},
    {"type": "model", "id": "claude-3-5-haiku-20241022", "display_name": "Claude 3.5 Haiku", "created_at": "2024-10-22T00:00:00Z"}
  ],
  "has_more": false
}`

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// fakeVendor 計算呼叫次數；gate 不為 nil 時會卡住直到 gate 關閉
type fakeVendor struct {
	calls atomic.Int32

	mu      sync.Mutex
	payload string
	err     error
	gate    chan struct{}
	// 為 true 時不回應，直到 ctx 結束
	hang bool
}

func newFakeVendor(payload string) *fakeVendor {
	return &fakeVendor{payload: payload}
}

func (v *fakeVendor) FetchModels(ctx context.Context) ([]byte, error) {
	v.calls.Add(1)
	v.mu.Lock()
	gate, hang := v.gate, v.hang
	v.mu.Unlock()

	if hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return nil, v.err
	}
	return []byte(v.payload), nil
}

func (v *fakeVendor) set(payload string, err error) {
	v.mu.Lock()
	v.payload, v.err = payload, err
	v.mu.Unlock()
}

func (v *fakeVendor) hangUntilTimeout() {
	v.mu.Lock()
	v.hang = true
	v.mu.Unlock()
}

func (v *fakeVendor) Calls() int {
	return int(v.calls.Load())
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		Catalog: config.Catalog{
			DefaultTimeoutMs: 200,
			Providers: map[string]config.CatalogProvider{
				string(core.ProviderOpenAI): {TTLMs: 86400000},
			},
		},
	}
}

func newTestRegistry(t *testing.T, vendors Vendors, clock *fakeClock) *Registry {
	t.Helper()
	fallback, err := NewStaticFallback()
	require.NoError(t, err)
	r := NewRegistry(zaptest.NewLogger(t), &telemetry.Trace{}, &telemetry.Metric{}, testConfig(), vendors, fallback, nil)
	r.now = clock.Now
	return r
}

func modelIDs(c ProviderCatalog) []string {
	ids := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		ids = append(ids, m.ID)
	}
	return ids
}
