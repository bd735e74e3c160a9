package telemetry

import (
	"context"
	"errors"
	"testing"

	"modelhub/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTrace() (*Trace, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return &Trace{TracerProvider: tp, ServiceName: "modelhub-test"}, sr
}

func TestWithSpan_EndIsIdempotent(t *testing.T) {
	tr, sr := newRecordingTrace()

	_, _, end := tr.WithSpan(context.Background(), "catalog.fetch")
	end(errors.New("boom"))
	end(nil)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "catalog.fetch", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestWithSpan_NoopWithoutProvider(t *testing.T) {
	tr := &Trace{}
	ctx, span, end := tr.WithSpan(context.Background(), "noop")
	require.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	end(nil)
}

func TestApplyTraceAttributes(t *testing.T) {
	tr, sr := newRecordingTrace()
	_, span, end := tr.WithSpan(context.Background(), "attrs")
	tr.ApplyTraceAttributes(span, core.TraceCatalogFetchMeta{
		Provider:   "openai",
		Forced:     true,
		Source:     "live",
		ModelCount: 3,
		DurationMs: 12,
	})
	end(nil)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		got[kv.Key] = kv.Value
	}
	assert.Equal(t, "openai", got["catalog.provider"].AsString())
	assert.True(t, got["catalog.forced"].AsBool())
	assert.Equal(t, int64(3), got["catalog.model_count"].AsInt64())
	assert.Equal(t, float64(12), got["catalog.fetch_latency_ms"].AsFloat64())
}

func TestApplyTraceAttributes_OmitEmpty(t *testing.T) {
	tr, sr := newRecordingTrace()
	_, span, end := tr.WithSpan(context.Background(), "rl")
	tr.ApplyTraceAttributes(span, &core.TraceRateLimitMeta{ClientKey: "1.2.3.4", Op: "consume"})
	end(nil)

	keys := map[attribute.Key]bool{}
	for _, kv := range sr.Ended()[0].Attributes() {
		keys[kv.Key] = true
	}
	assert.True(t, keys["rl.client_key"])
	assert.True(t, keys["rl.limit_count"], "zero without omitempty is still recorded")
	assert.False(t, keys["rl.remaining"])
	assert.False(t, keys["rl.ttl_sec"])
}

func TestWithSpan_DefaultNameIsCaller(t *testing.T) {
	tr, sr := newRecordingTrace()
	_, _, end := tr.WithSpan(context.Background())
	end(nil)
	assert.Equal(t, "TestWithSpan_DefaultNameIsCaller", sr.Ended()[0].Name())
}

func TestPrettifyFuncName(t *testing.T) {
	cases := map[string]string{
		"modelhub/internal/handler.(*CatalogHandler).ListProviders-fm": "CatalogHandler.ListProviders",
		"modelhub/internal/service.(*CatalogService).Prewarm.func1":    "CatalogService.Prewarm",
		"modelhub/internal/cron.(*Store[...]).Get":                     "Store.Get",
	}
	for in, want := range cases {
		assert.Equal(t, want, prettifyFuncName(in), in)
	}
}
