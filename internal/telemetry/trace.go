package telemetry

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"time"

	"modelhub/config"
	"modelhub/internal/core"

	"github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Trace TracerProvider 為 nil 時所有 span 都是 noop
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

// NewTrace 未啟用時回傳 noop；cleanup 會 flush 尚未送出的 span
func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.Telemetry.Trace.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  60 * time.Second, // 超過就丟棄
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(newSampler(conf.Telemetry.Trace.SampleRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
			semconv.ServiceVersion(conf.App.Version),
			semconv.DeploymentEnvironmentName(conf.App.Env),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(newPropagator(conf))
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, cleanup, nil
}

// newSampler ratio 不在 (0,1) 之間時全部取樣；上游已決定取樣的 span 照上游
func newSampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// newPropagator 預設 W3C traceparent + baggage；部署在 GCP 時額外解析 X-Cloud-Trace-Context
func newPropagator(conf *config.Configuration) propagation.TextMapPropagator {
	props := []propagation.TextMapPropagator{
		propagation.TraceContext{},
		propagation.Baggage{},
	}
	if conf != nil && conf.Telemetry.Trace.CloudTrace {
		props = append(props, propagator.CloudTraceOneWayPropagator{})
	}
	return propagation.NewCompositeTextMapPropagator(props...)
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(
	ctx context.Context,
	spanName core.TraceSpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan parent 可以是 *gin.Context（handler）或 context.Context（service / repository）。
// 未指定名稱時 handler 用 handler 函式名，其餘用呼叫者的方法名。
// end 只有第一次呼叫有效，handler 可先 end(err) 再交給 defer end(nil)
func (t *Trace) WithSpan(parent interface{}, name ...string) (context.Context, trace.Span, func(error)) {
	override := ""
	if len(name) > 0 {
		override = strings.TrimSpace(name[0])
	}

	var ctx context.Context
	var span trace.Span
	switch p := parent.(type) {
	case *gin.Context:
		n := override
		if n == "" {
			n = spanNameFromGin(p)
		}
		ctx, span = t.StartSpanForLayer(t.GetTraceContext(p), core.TraceSpanName(n))
		p.Set(core.ContextTraceKey, ctx)
	case context.Context:
		n := override
		if n == "" {
			n = prettifyFuncName(callerFuncName(2))
		}
		ctx, span = t.StartSpanForLayer(p, core.TraceSpanName(n))
	default:
		n := override
		if n == "" {
			n = "unknown"
		}
		ctx, span = t.StartSpanForLayer(context.Background(), core.TraceSpanName(n))
	}

	var once sync.Once
	end := func(err error) {
		once.Do(func() { t.EndSpan(span, err) })
	}
	return ctx, span, end
}

func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceContext 取得 TraceEntry / 上一層 handler span 寫入的 ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if v, ok := c.Get(core.ContextTraceKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

// ApplyTraceAttributes 依 `trace:"key[,omitempty]"` tag 把欄位寫進 span；巢狀 struct 遞迴處理
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj interface{}) {
	if span == nil || obj == nil || !span.IsRecording() {
		return
	}
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()

	attrs := make([]attribute.KeyValue, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("trace")
		if tag == "" || !field.IsExported() {
			continue
		}
		key, opts, _ := strings.Cut(tag, ",")
		fv := val.Field(i)
		if opts == "omitempty" && fv.IsZero() {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			t.ApplyTraceAttributes(span, fv.Interface())
		case reflect.Ptr:
			if !fv.IsNil() {
				t.ApplyTraceAttributes(span, fv.Interface())
			}
		default:
			if kv, ok := toAttribute(key, fv); ok {
				attrs = append(attrs, kv)
			}
		}
	}
	span.SetAttributes(attrs...)
}

func toAttribute(key string, v reflect.Value) (attribute.KeyValue, bool) {
	switch v.Kind() {
	case reflect.String:
		return attribute.String(key, v.String()), true
	case reflect.Bool:
		return attribute.Bool(key, v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return attribute.Int64(key, v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return attribute.Int64(key, int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return attribute.Float64(key, v.Float()), true
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.String {
			return attribute.KeyValue{}, false
		}
		strs := make([]string, v.Len())
		for i := range strs {
			strs[i] = v.Index(i).String()
		}
		return attribute.StringSlice(key, strs), true
	}
	return attribute.KeyValue{}, false
}

// prettifyFuncName "modelhub/internal/handler.(*CatalogHandler).ListProviders-fm" → "CatalogHandler.ListProviders"
func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
	// 泛型型參
	if i := strings.Index(full, "["); i >= 0 {
		if j := strings.Index(full, "]"); j > i {
			full = full[:i] + full[j+1:]
		}
	}
	return full
}

func spanNameFromGin(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
