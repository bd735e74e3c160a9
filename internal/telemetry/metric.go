package telemetry

import (
	"modelhub/config"
	"modelhub/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct；未啟用時所有欄位皆為 nil，呼叫端需先判斷
type Metric struct {
	HttpRequestsTotal    *prometheus.CounterVec
	HttpRequestDuration  *prometheus.HistogramVec
	CatalogFetchTotal    *prometheus.CounterVec
	CatalogFetchDuration *prometheus.HistogramVec
	CatalogLookupTotal   *prometheus.CounterVec
	CatalogFetchWaiters  *prometheus.GaugeVec
	RefreshLimitedTotal  *prometheus.CounterVec
	config               *config.Configuration
}

// NewMetric 建立所有指標（註冊到 prometheus 預設 registry）
func NewMetric(config *config.Configuration) *Metric {
	return NewMetricWithRegisterer(config, prometheus.DefaultRegisterer)
}

// NewMetricWithRegisterer 測試時可傳入獨立的 registry，避免重複註冊
func NewMetricWithRegisterer(config *config.Configuration, reg prometheus.Registerer) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	factory := promauto.With(reg)
	prefix := config.App.Name + "_"
	return &Metric{
		config: config,
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		CatalogFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricCatalogFetchTotal),
				Help: "Vendor model list fetches by result (live / error kind)",
			},
			labelNames(core.MetricLabelProvider, core.MetricLabelResult),
		),
		CatalogFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricCatalogFetchDuration),
				Help:    "Vendor model list fetch duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelProvider),
		),
		CatalogLookupTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricCatalogLookupTotal),
				Help: "Catalog reads by outcome (hit / miss / stale)",
			},
			labelNames(core.MetricLabelProvider, core.MetricLabelOutcome),
		),
		CatalogFetchWaiters: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricCatalogFetchWaiters),
				Help: "Callers currently waiting on an in-flight fetch",
			},
			labelNames(core.MetricLabelProvider),
		),
		RefreshLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricRefreshLimitedTotal),
				Help: "Forced refresh requests rejected by the throttle",
			},
			labelNames(core.MetricLabelProvider),
		),
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
