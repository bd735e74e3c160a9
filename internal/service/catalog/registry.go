package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	lookupHit   = "hit"
	lookupMiss  = "miss"
	lookupStale = "stale"
)

// Registry 對外提供目錄查詢；快取新鮮直接回傳，過期才透過 Coordinator 抓取。
// 供應商錯誤一律在內部吸收，只會反映在 ProviderCatalog.LastError。
type Registry struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	store       *Store
	flights     *Coordinator
	vendors     Vendors
	normalizers map[core.ModelShape]Normalizer
	fallback    FallbackSource
	observer    RefreshObserver
	catalogConf config.Catalog
	now         func() time.Time
}

func NewRegistry(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	vendors Vendors,
	fallback FallbackSource,
	observer RefreshObserver,
) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if trace == nil {
		trace = &telemetry.Trace{}
	}
	if metric == nil {
		metric = &telemetry.Metric{}
	}
	var catalogConf config.Catalog
	if conf != nil {
		catalogConf = conf.Catalog
	}
	r := &Registry{
		logger:      logger,
		trace:       trace,
		metric:      metric,
		store:       NewStore(),
		flights:     NewCoordinator(),
		vendors:     vendors,
		normalizers: NewNormalizers(logger),
		fallback:    fallback,
		observer:    observer,
		catalogConf: catalogConf,
		now:         time.Now,
	}
	if metric.CatalogFetchWaiters != nil {
		r.flights.onWait = func(p core.ProviderName, n int) {
			metric.CatalogFetchWaiters.WithLabelValues(string(p)).Set(float64(n))
		}
	}
	return r
}

// GetModels 新鮮直接回傳（不會打網路）；過期或不存在時抓取。
// 唯一會回傳的錯誤是未知 provider 以及呼叫端自己的 ctx 結束。
func (r *Registry) GetModels(ctx context.Context, p core.ProviderName) (ProviderCatalog, error) {
	spec, ok := core.LookupProvider(p)
	if !ok {
		return ProviderCatalog{}, unknownProvider(p)
	}
	cached, ok := r.store.Get(p)
	switch {
	case !ok:
		r.countLookup(p, lookupMiss)
	case isStale(cached, r.now()):
		r.countLookup(p, lookupStale)
	default:
		r.countLookup(p, lookupHit)
		return cached, nil
	}
	return r.load(ctx, spec, false)
}

// Refresh 不看 TTL 直接抓取；仍與同 provider 進行中的抓取合併
func (r *Registry) Refresh(ctx context.Context, p core.ProviderName) (ProviderCatalog, error) {
	spec, ok := core.LookupProvider(p)
	if !ok {
		return ProviderCatalog{}, unknownProvider(p)
	}
	return r.load(ctx, spec, true)
}

// GetAll 所有 provider 並行查詢，結果依宣告順序排列；單一 provider 失敗不影響其他
func (r *Registry) GetAll(ctx context.Context) []ProviderCatalog {
	out := make([]ProviderCatalog, len(core.Providers))
	var g errgroup.Group
	for i, spec := range core.Providers {
		g.Go(func() error {
			c, err := r.GetModels(ctx, spec.Name)
			if err != nil {
				// 呼叫端已離開，回傳目前手上有的
				c = r.cachedOrEmpty(spec)
			}
			out[i] = c
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// FindProviderForModel 只掃描目前快取，不會觸發抓取
func (r *Registry) FindProviderForModel(modelID string) (core.ProviderName, bool) {
	if modelID == "" {
		return "", false
	}
	for _, c := range r.store.Snapshot() {
		if c.hasModel(modelID) {
			return c.Provider, true
		}
	}
	return "", false
}

// Cached 目前快取內容（依宣告順序），不會觸發抓取
func (r *Registry) Cached() []ProviderCatalog {
	return r.store.Snapshot()
}

// ProviderStatus GET /providers 使用
type ProviderStatus struct {
	Name        core.ProviderName `json:"name"`
	DisplayName string            `json:"displayName"`
	Live        bool              `json:"live"`
	TTLMs       int64             `json:"ttlMs"`
	TimeoutMs   int64             `json:"timeoutMs"`
	Cached      bool              `json:"cached"`
	Source      Source            `json:"source,omitempty"`
	LastUpdated *time.Time        `json:"lastUpdated,omitempty"`
	LastError   *ErrorInfo        `json:"lastError,omitempty"`
}

func (r *Registry) Providers() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(core.Providers))
	for _, spec := range core.Providers {
		_, live := r.vendors[spec.Name]
		st := ProviderStatus{
			Name:        spec.Name,
			DisplayName: spec.DisplayName,
			Live:        live,
			TTLMs:       r.ttl(spec).Milliseconds(),
			TimeoutMs:   r.catalogConf.Timeout(string(spec.Name)).Milliseconds(),
		}
		if c, ok := r.store.Get(spec.Name); ok {
			st.Cached = true
			st.Source = c.Source
			st.LastError = c.LastError
			if !c.LastUpdated.IsZero() {
				st.LastUpdated = ptr(c.LastUpdated)
			}
		}
		out = append(out, st)
	}
	return out
}

func (r *Registry) load(ctx context.Context, spec core.ProviderSpec, forced bool) (ProviderCatalog, error) {
	c, _, err := r.flights.FetchOnce(ctx, spec.Name, func(fctx context.Context) (ProviderCatalog, error) {
		// 前一次抓取剛結束才進來的呼叫端直接用結果
		if !forced {
			if cached, ok := r.store.Get(spec.Name); ok && !isStale(cached, r.now()) {
				return cached, nil
			}
		}
		return r.fetch(fctx, spec, forced), nil
	})
	if err != nil {
		return ProviderCatalog{}, err
	}
	return c, nil
}

// fetch 只會在 Coordinator 的單一 flight 內執行，同一 provider 的寫入因此是序列化的
func (r *Registry) fetch(ctx context.Context, spec core.ProviderSpec, forced bool) ProviderCatalog {
	ctx, span, end := r.trace.WithSpan(ctx, string(core.SpanCatalogFetch))
	start := time.Now()
	ttl := r.ttl(spec)

	var result ProviderCatalog
	var fetchErr *Error
	client, hasClient := r.vendors[spec.Name]
	normalizer, hasShape := r.normalizers[spec.Shape]
	if !hasClient || !hasShape {
		result = ProviderCatalog{
			Provider:    spec.Name,
			Models:      r.fallbackModels(spec.Name),
			LastUpdated: r.now(),
			TTLMs:       ttl.Milliseconds(),
			Source:      SourceStatic,
		}
	} else {
		models, err := r.fetchLive(ctx, spec, client, normalizer)
		if err != nil {
			fetchErr = classify(spec.Name, err)
			result = r.degrade(spec, ttl, fetchErr)
		} else {
			result = ProviderCatalog{
				Provider:    spec.Name,
				Models:      models,
				LastUpdated: r.now(),
				TTLMs:       ttl.Milliseconds(),
				Source:      SourceLive,
			}
		}
	}
	r.store.Put(result)
	duration := time.Since(start)

	meta := core.TraceCatalogFetchMeta{
		Provider:   string(spec.Name),
		Forced:     forced,
		Source:     string(result.Source),
		ModelCount: len(result.Models),
		DurationMs: float64(duration.Milliseconds()),
	}
	resultLabel := string(result.Source)
	if fetchErr != nil {
		meta.ErrorKind = string(fetchErr.Kind)
		resultLabel = string(fetchErr.Kind)
	}
	r.trace.ApplyTraceAttributes(span, meta)
	if r.metric.CatalogFetchTotal != nil && r.metric.CatalogFetchDuration != nil {
		r.metric.CatalogFetchTotal.WithLabelValues(string(spec.Name), resultLabel).Inc()
		r.metric.CatalogFetchDuration.WithLabelValues(string(spec.Name)).Observe(duration.Seconds())
	}

	traceID := span.SpanContext().TraceID()
	if fetchErr != nil {
		r.logger.Warn("[Catalog] vendor fetch failed",
			zap.String("provider", string(spec.Name)),
			zap.String("kind", string(fetchErr.Kind)),
			zap.Error(fetchErr),
			zap.String("serving", string(result.Source)),
			zap.Int("models", len(result.Models)),
			zap.Duration("duration", duration),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
	} else {
		r.logger.Info("[Catalog] catalog refreshed",
			zap.String("provider", string(spec.Name)),
			zap.String("source", string(result.Source)),
			zap.Int("models", len(result.Models)),
			zap.Bool("forced", forced),
			zap.Duration("duration", duration),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
	}
	if r.observer != nil {
		r.observer.ObserveRefresh(ctx, RefreshEvent{
			Provider:   spec.Name,
			Forced:     forced,
			Source:     result.Source,
			ModelCount: len(result.Models),
			Err:        result.LastError,
			Duration:   duration,
			At:         r.now(),
		})
	}

	if fetchErr != nil {
		end(fetchErr)
	} else {
		end(nil)
	}
	return result
}

func (r *Registry) fetchLive(
	ctx context.Context,
	spec core.ProviderSpec,
	client VendorClient,
	normalizer Normalizer,
) ([]ModelRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.catalogConf.Timeout(string(spec.Name)))
	defer cancel()

	raw, err := client.FetchModels(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, Timeout(spec.Name, err)
		}
		return nil, err
	}
	return normalizer.Normalize(spec.Name, raw)
}

// degrade 舊的 live 資料優先於內建清單；保留原本的 LastUpdated 讓下次呼叫繼續重試
func (r *Registry) degrade(spec core.ProviderSpec, ttl time.Duration, fetchErr *Error) ProviderCatalog {
	info := &ErrorInfo{
		Kind:    fetchErr.Kind,
		Message: fetchErr.Error(),
		At:      r.now(),
	}
	if prev, ok := r.store.Get(spec.Name); ok && prev.Source == SourceLive {
		prev.LastError = info
		return prev
	}
	return ProviderCatalog{
		Provider:  spec.Name,
		Models:    r.fallbackModels(spec.Name),
		TTLMs:     ttl.Milliseconds(),
		LastError: info,
		Source:    SourceFallback,
	}
}

func (r *Registry) fallbackModels(p core.ProviderName) []ModelRecord {
	if r.fallback == nil {
		return []ModelRecord{}
	}
	models := r.fallback.Get(p)
	if models == nil {
		return []ModelRecord{}
	}
	return models
}

func (r *Registry) cachedOrEmpty(spec core.ProviderSpec) ProviderCatalog {
	if c, ok := r.store.Get(spec.Name); ok {
		return c
	}
	return ProviderCatalog{
		Provider: spec.Name,
		Models:   []ModelRecord{},
		TTLMs:    r.ttl(spec).Milliseconds(),
		Source:   SourceFallback,
	}
}

func (r *Registry) ttl(spec core.ProviderSpec) time.Duration {
	return r.catalogConf.TTL(string(spec.Name), spec.DefaultTTLMs)
}

func (r *Registry) countLookup(p core.ProviderName, outcome string) {
	if r.metric.CatalogLookupTotal != nil {
		r.metric.CatalogLookupTotal.WithLabelValues(string(p), outcome).Inc()
	}
}
