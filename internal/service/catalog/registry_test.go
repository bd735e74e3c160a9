package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"modelhub/internal/core"
	"modelhub/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_UnknownProvider(t *testing.T) {
	r := newTestRegistry(t, Vendors{}, newFakeClock())

	_, err := r.GetModels(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = r.Refresh(context.Background(), "nope")
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindUnknownProvider, ce.Kind)
}

func TestRegistry_ConcurrentColdCallsCoalesce(t *testing.T) {
	vendor := newFakeVendor(openAIThreeModels)
	vendor.gate = make(chan struct{})
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())

	const n = 10
	results := make([]ProviderCatalog, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.GetModels(context.Background(), core.ProviderOpenAI)
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	require.Eventually(t, func() bool { return r.flights.Waiters(core.ProviderOpenAI) == n }, time.Second, time.Millisecond)
	close(vendor.gate)
	wg.Wait()

	assert.Equal(t, 1, vendor.Calls())
	for _, c := range results {
		assert.Equal(t, results[0], c)
		assert.Len(t, c.Models, 3)
	}
}

func TestRegistry_ConcurrentColdCallsShareFallback(t *testing.T) {
	vendor := newFakeVendor("")
	vendor.err = errors.New("connection refused")
	vendor.gate = make(chan struct{})
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())

	const n = 4
	results := make([]ProviderCatalog, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.GetModels(context.Background(), core.ProviderOpenAI)
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	require.Eventually(t, func() bool { return r.flights.Waiters(core.ProviderOpenAI) == n }, time.Second, time.Millisecond)
	close(vendor.gate)
	wg.Wait()

	assert.Equal(t, 1, vendor.Calls())
	for _, c := range results {
		assert.Equal(t, SourceFallback, c.Source)
		require.NotNil(t, c.LastError)
		assert.Equal(t, results[0].Models, c.Models)
	}
}

func TestRegistry_TTLBoundaries(t *testing.T) {
	clock := newFakeClock()
	vendor := newFakeVendor(openAIThreeModels)
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, clock)
	ctx := context.Background()

	first, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, int64(86400000), first.TTLMs)
	assert.Equal(t, 1, vendor.Calls())

	clock.Advance(86400000*time.Millisecond - time.Millisecond)
	cached, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 1, vendor.Calls(), "T+D-1 must be served from cache")
	assert.Equal(t, first.LastUpdated, cached.LastUpdated)

	clock.Advance(2 * time.Millisecond)
	refreshed, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.Calls(), "T+D+1 must trigger exactly one fetch")
	assert.Equal(t, clock.Now(), refreshed.LastUpdated)
}

func TestRegistry_ProviderDefaultTTL(t *testing.T) {
	r := newTestRegistry(t, Vendors{core.ProviderOpenRouter: newFakeVendor(`{"data":[]}`)}, newFakeClock())
	c, err := r.GetModels(context.Background(), core.ProviderOpenRouter)
	require.NoError(t, err)
	assert.Equal(t, int64(12*60*60*1000), c.TTLMs)
	assert.Equal(t, SourceLive, c.Source)
	assert.Empty(t, c.Models)
	assert.Nil(t, c.LastError)
}

func TestRegistry_RefreshBypassesFreshness(t *testing.T) {
	vendor := newFakeVendor(openAIThreeModels)
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())
	ctx := context.Background()

	_, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	vendor.set(`{"data":[{"id":"gpt-5"}]}`, nil)

	c, err := r.Refresh(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.Calls())
	assert.Equal(t, []string{"gpt-5"}, modelIDs(c))

	again, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-5"}, modelIDs(again))
	assert.Equal(t, 2, vendor.Calls())
}

func TestRegistry_ReturnedRecordsDoNotAliasCache(t *testing.T) {
	vendor := newFakeVendor(`{"data":[{
		"id":"anthropic/claude-3.5-sonnet","created":1718841600,"context_length":200000,
		"architecture":{"input_modalities":["text","image"],"output_modalities":["text"]},
		"pricing":{"prompt":"0.000003","completion":"0.000015"},
		"top_provider":{"max_completion_tokens":8192},
		"supported_parameters":["tools"]
	}]}`)
	r := newTestRegistry(t, Vendors{core.ProviderOpenRouter: vendor}, newFakeClock())
	ctx := context.Background()

	c, err := r.GetModels(ctx, core.ProviderOpenRouter)
	require.NoError(t, err)
	require.Len(t, c.Models, 1)
	m := c.Models[0]
	*m.ContextLength = 1
	*m.MaxTokens = 1
	*m.CreatedAt = time.Time{}
	*m.Capabilities.ToolCalling = false
	m.Capabilities.InputModalities[0] = "audio"
	*m.Pricing.InputPerMTok = 0

	again, err := r.GetModels(ctx, core.ProviderOpenRouter)
	require.NoError(t, err)
	assert.Equal(t, 1, vendor.Calls(), "second read is a cache hit")
	cached := again.Models[0]
	assert.Equal(t, 200000, *cached.ContextLength)
	assert.Equal(t, 8192, *cached.MaxTokens)
	assert.False(t, cached.CreatedAt.IsZero())
	assert.True(t, *cached.Capabilities.ToolCalling)
	assert.Equal(t, []string{"text", "image"}, cached.Capabilities.InputModalities)
	assert.InDelta(t, 3.0, *cached.Pricing.InputPerMTok, 1e-9)
}

func TestRegistry_FailureWithoutPriorDataServesFallback(t *testing.T) {
	vendor := newFakeVendor("")
	vendor.err = errors.New("dial tcp: connection refused")
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())
	ctx := context.Background()

	c, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, c.Source)
	assert.Equal(t, r.fallback.Get(core.ProviderOpenAI), c.Models)
	assert.True(t, c.LastUpdated.IsZero())
	require.NotNil(t, c.LastError)
	assert.Equal(t, KindVendorUnavailable, c.LastError.Kind)
	assert.Contains(t, c.LastError.Message, "connection refused")

	// 不記住失敗：下一次呼叫仍會重試
	vendor.set(openAIThreeModels, nil)
	c, err = r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.Calls())
	assert.Equal(t, SourceLive, c.Source)
	assert.Nil(t, c.LastError)
}

func TestRegistry_FailureWithPriorDataKeepsStaleCatalog(t *testing.T) {
	clock := newFakeClock()
	vendor := newFakeVendor(openAIThreeModels)
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, clock)
	ctx := context.Background()

	good, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)

	vendor.set(`{"unexpected":true}`, nil)
	clock.Advance(25 * time.Hour)
	c, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, good.Models, c.Models)
	assert.Equal(t, good.LastUpdated, c.LastUpdated)
	assert.Equal(t, SourceLive, c.Source)
	require.NotNil(t, c.LastError)
	assert.Equal(t, KindVendorMalformedResponse, c.LastError.Kind)
	assert.Equal(t, clock.Now(), c.LastError.At)

	// 仍留在快取，且依舊是過期狀態
	stored, ok := r.store.Get(core.ProviderOpenAI)
	require.True(t, ok)
	assert.Equal(t, good.Models, stored.Models)
	assert.True(t, r.store.IsStale(core.ProviderOpenAI, clock.Now()))
}

func TestRegistry_TimeoutIsClassified(t *testing.T) {
	vendor := newFakeVendor(openAIThreeModels)
	vendor.hangUntilTimeout()
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())

	start := time.Now()
	c, err := r.GetModels(context.Background(), core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	require.NotNil(t, c.LastError)
	assert.Equal(t, KindVendorTimeout, c.LastError.Kind)
	assert.Equal(t, SourceFallback, c.Source)
}

// openai ttl=86400000：t=0 成功 3 筆、t=1000 兩個並行呼叫不打 API、
// t=86400001 逾時後回傳原本 3 筆並帶 LastError
func TestRegistry_OpenAITimelineScenario(t *testing.T) {
	clock := newFakeClock()
	t0 := clock.Now()
	vendor := newFakeVendor(openAIThreeModels)
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, clock)
	ctx := context.Background()

	initial, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	require.Len(t, initial.Models, 3)

	clock.Advance(1000 * time.Millisecond)
	var wg sync.WaitGroup
	pair := make([]ProviderCatalog, 2)
	for i := range pair {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.GetModels(ctx, core.ProviderOpenAI)
			assert.NoError(t, err)
			pair[i] = c
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, vendor.Calls())
	assert.Equal(t, initial, pair[0])
	assert.Equal(t, initial, pair[1])

	clock.Advance(86400001*time.Millisecond - 1000*time.Millisecond)
	vendor.hangUntilTimeout()
	c, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.Calls())
	assert.Equal(t, initial.Models, c.Models)
	assert.Equal(t, t0, c.LastUpdated)
	require.NotNil(t, c.LastError)
	assert.Equal(t, KindVendorTimeout, c.LastError.Kind)
}

func TestRegistry_StaticProvidersNeedNoVendor(t *testing.T) {
	r := newTestRegistry(t, Vendors{}, newFakeClock())
	c, err := r.GetModels(context.Background(), core.ProviderPerplexity)
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, c.Source)
	assert.Nil(t, c.LastError)
	assert.NotEmpty(t, c.Models)
	assert.False(t, r.store.IsStale(core.ProviderPerplexity, r.now()))
}

func TestRegistry_GetAllIndependentFailures(t *testing.T) {
	failing := newFakeVendor("")
	failing.err = errors.New("503 service unavailable")
	slow := newFakeVendor(anthropicTwoModels)
	slow.gate = make(chan struct{})
	mistral := newFakeVendor(`{"data":[{"id":"mistral-small-latest"}]}`)

	r := newTestRegistry(t, Vendors{
		core.ProviderOpenAI:    failing,
		core.ProviderAnthropic: slow,
		core.ProviderMistral:   mistral,
	}, newFakeClock())

	// anthropic 晚一點才回應，不能拖住其他 provider 的抓取
	go func() {
		assert.Eventually(t, func() bool {
			c, ok := r.store.Get(core.ProviderMistral)
			return ok && c.Source == SourceLive
		}, time.Second, time.Millisecond)
		close(slow.gate)
	}()

	all := r.GetAll(context.Background())
	require.Len(t, all, len(core.Providers))
	for i, spec := range core.Providers {
		assert.Equal(t, spec.Name, all[i].Provider)
	}

	byName := map[core.ProviderName]ProviderCatalog{}
	for _, c := range all {
		byName[c.Provider] = c
	}
	assert.Equal(t, SourceFallback, byName[core.ProviderOpenAI].Source)
	require.NotNil(t, byName[core.ProviderOpenAI].LastError)
	assert.Equal(t, SourceLive, byName[core.ProviderAnthropic].Source)
	assert.Len(t, byName[core.ProviderAnthropic].Models, 2)
	assert.Equal(t, SourceLive, byName[core.ProviderMistral].Source)
	assert.Equal(t, SourceStatic, byName[core.ProviderPerplexity].Source)
	for _, v := range []*fakeVendor{failing, slow, mistral} {
		assert.Equal(t, 1, v.Calls())
	}
}

func TestRegistry_GetAllWithCancelledCaller(t *testing.T) {
	vendor := newFakeVendor(openAIThreeModels)
	vendor.gate = make(chan struct{})
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: vendor}, newFakeClock())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	all := r.GetAll(ctx)
	require.Len(t, all, len(core.Providers))
	assert.Equal(t, core.ProviderOpenAI, all[0].Provider)
	assert.NotNil(t, all[0].Models)

	// 呼叫端離開後抓取仍會完成並寫入快取
	close(vendor.gate)
	require.Eventually(t, func() bool {
		c, ok := r.store.Get(core.ProviderOpenAI)
		return ok && c.Source == SourceLive
	}, time.Second, time.Millisecond)
}

func TestRegistry_FindProviderForModel(t *testing.T) {
	r := newTestRegistry(t, Vendors{
		core.ProviderOpenAI: newFakeVendor(openAIThreeModels),
		core.ProviderGoogle: newFakeVendor(`{"models":[{"name":"models/gemini-2.0-flash"}]}`),
	}, newFakeClock())
	ctx := context.Background()

	_, ok := r.FindProviderForModel("gpt-4o")
	assert.False(t, ok, "lookup never triggers a fetch")

	_, err := r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	_, err = r.GetModels(ctx, core.ProviderGoogle)
	require.NoError(t, err)

	p, ok := r.FindProviderForModel("gpt-4o")
	assert.True(t, ok)
	assert.Equal(t, core.ProviderOpenAI, p)

	p, ok = r.FindProviderForModel("models/gemini-2.0-flash")
	assert.True(t, ok)
	assert.Equal(t, core.ProviderGoogle, p)

	_, ok = r.FindProviderForModel("unknown-model")
	assert.False(t, ok)
	_, ok = r.FindProviderForModel("")
	assert.False(t, ok)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []RefreshEvent
}

func (o *recordingObserver) ObserveRefresh(_ context.Context, ev RefreshEvent) {
	o.mu.Lock()
	o.events = append(o.events, ev)
	o.mu.Unlock()
}

func TestRegistry_ObserverAndMetrics(t *testing.T) {
	conf := testConfig()
	conf.App.Name = "modelhub"
	conf.Telemetry.Metric.Enabled = true
	reg := prometheus.NewRegistry()
	metric := telemetry.NewMetricWithRegisterer(conf, reg)
	observer := &recordingObserver{}
	fallback, err := NewStaticFallback()
	require.NoError(t, err)

	failing := newFakeVendor("")
	failing.err = errors.New("boom")
	r := NewRegistry(zap.NewNop(), &telemetry.Trace{}, metric, conf, Vendors{
		core.ProviderOpenAI: newFakeVendor(openAIThreeModels),
		core.ProviderGroq:   failing,
	}, fallback, observer)
	ctx := context.Background()

	_, err = r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	_, err = r.GetModels(ctx, core.ProviderOpenAI)
	require.NoError(t, err)
	_, err = r.Refresh(ctx, core.ProviderGroq)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metric.CatalogFetchTotal.WithLabelValues("openai", "live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metric.CatalogFetchTotal.WithLabelValues("groq", string(KindVendorUnavailable))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metric.CatalogLookupTotal.WithLabelValues("openai", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metric.CatalogLookupTotal.WithLabelValues("openai", "hit")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metric.CatalogFetchWaiters.WithLabelValues("openai")))

	observer.mu.Lock()
	defer observer.mu.Unlock()
	require.Len(t, observer.events, 2)
	assert.Equal(t, core.ProviderOpenAI, observer.events[0].Provider)
	assert.Equal(t, 3, observer.events[0].ModelCount)
	assert.False(t, observer.events[0].Forced)
	assert.Equal(t, core.ProviderGroq, observer.events[1].Provider)
	assert.True(t, observer.events[1].Forced)
	require.NotNil(t, observer.events[1].Err)
	assert.Equal(t, KindVendorUnavailable, observer.events[1].Err.Kind)
}

func TestRegistry_ProvidersStatus(t *testing.T) {
	r := newTestRegistry(t, Vendors{core.ProviderOpenAI: newFakeVendor(openAIThreeModels)}, newFakeClock())
	_, err := r.GetModels(context.Background(), core.ProviderOpenAI)
	require.NoError(t, err)

	list := r.Providers()
	require.Len(t, list, len(core.Providers))
	assert.Equal(t, core.ProviderOpenAI, list[0].Name)
	assert.True(t, list[0].Live)
	assert.True(t, list[0].Cached)
	assert.Equal(t, int64(86400000), list[0].TTLMs)
	assert.Equal(t, int64(200), list[0].TimeoutMs)
	require.NotNil(t, list[0].LastUpdated)

	assert.False(t, list[1].Live)
	assert.False(t, list[1].Cached)
}
