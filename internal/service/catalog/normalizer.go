package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"modelhub/internal/core"

	"go.uber.org/zap"
)

// Normalizer 把單一供應商的原始 list 回應轉成 ModelRecord。
// 單筆資料壞掉只丟棄該筆；整包無法解析才回傳 VendorMalformedResponse。
type Normalizer interface {
	Normalize(p core.ProviderName, raw []byte) ([]ModelRecord, error)
}

var errMissingID = errors.New("model record has no id")

// shapeNormalizer 一種原始格式 = 拆出清單 + 單筆轉換
type shapeNormalizer struct {
	items  func(raw []byte) ([]json.RawMessage, error)
	record func(p core.ProviderName, item json.RawMessage) (ModelRecord, error)
	logger *zap.Logger
}

// shapes 新增供應商格式只需在此加一列
var shapes = map[core.ModelShape]shapeNormalizer{
	core.ShapeOpenAI:     {items: listField("data"), record: openAIRecord},
	core.ShapeMistral:    {items: listField("data"), record: mistralRecord},
	core.ShapeOpenRouter: {items: listField("data"), record: openRouterRecord},
	core.ShapeTogether:   {items: bareOrListField("data"), record: togetherRecord},
	core.ShapeAnthropic:  {items: listField("data"), record: anthropicRecord},
	core.ShapeGoogle:     {items: listField("models"), record: googleRecord},
	core.ShapeCohere:     {items: listField("models"), record: cohereRecord},
	core.ShapeOllama:     {items: listField("models"), record: ollamaRecord},
}

// NewNormalizers 依 ModelShape 建立 Normalizer 表
func NewNormalizers(logger *zap.Logger) map[core.ModelShape]Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[core.ModelShape]Normalizer, len(shapes))
	for shape, n := range shapes {
		n.logger = logger
		out[shape] = n
	}
	return out
}

func (n shapeNormalizer) Normalize(p core.ProviderName, raw []byte) ([]ModelRecord, error) {
	items, err := n.items(raw)
	if err != nil {
		return nil, Malformed(p, err)
	}
	out := make([]ModelRecord, 0, len(items))
	dropped := 0
	for _, item := range items {
		rec, err := n.record(p, item)
		if err != nil {
			dropped++
			continue
		}
		out = append(out, fillRequired(p, rec))
	}
	if dropped > 0 && n.logger != nil {
		n.logger.Debug("[Catalog] dropped malformed model records",
			zap.String("provider", string(p)),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(out)),
		)
	}
	return out, nil
}

// fillRequired 必填欄位缺值時的對應：名稱沿用 id、擁有者為供應商本身
func fillRequired(p core.ProviderName, rec ModelRecord) ModelRecord {
	if rec.ProviderModelID == "" {
		rec.ProviderModelID = rec.ID
	}
	if rec.DisplayName == "" {
		rec.DisplayName = rec.ID
	}
	if rec.OwnedBy == "" {
		rec.OwnedBy = string(p)
	}
	return rec
}

// ==== 拆清單 ====

func listField(key string) func(raw []byte) ([]json.RawMessage, error) {
	return func(raw []byte) ([]json.RawMessage, error) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		field, ok := envelope[key]
		if !ok {
			return nil, fmt.Errorf("response has no %q field", key)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(field, &items); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		return items, nil
	}
}

// bareOrListField 有些供應商直接回傳陣列，有些包在物件裡
func bareOrListField(key string) func(raw []byte) ([]json.RawMessage, error) {
	wrapped := listField(key)
	return func(raw []byte) ([]json.RawMessage, error) {
		trimmed := strings.TrimSpace(string(raw))
		if strings.HasPrefix(trimmed, "[") {
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("decode list: %w", err)
			}
			return items, nil
		}
		return wrapped(raw)
	}
}

// ==== 欄位轉換 helpers ====

func ptr[T any](v T) *T {
	return &v
}

// intFrom JSON 數字可能帶小數點，統一以 float64 解再轉
func intFrom(f *float64) *int {
	if f == nil || *f <= 0 {
		return nil
	}
	return ptr(int(*f))
}

func unixTime(sec *float64) *time.Time {
	if sec == nil || *sec <= 0 {
		return nil
	}
	return ptr(time.Unix(int64(*sec), 0).UTC())
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return ptr(t.UTC())
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// contains 清單本身缺席時回傳 nil（未知），而不是 false
func contains(list []string, want ...string) *bool {
	if list == nil {
		return nil
	}
	for _, v := range list {
		for _, w := range want {
			if strings.EqualFold(v, w) {
				return ptr(true)
			}
		}
	}
	return ptr(false)
}

// perTokenToPerMTok OpenRouter 以每 token 的字串價格表示；負值代表浮動計價
func perTokenToPerMTok(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return nil
	}
	return ptr(math.Round(f*1e6*1e6) / 1e6)
}

func nonNegative(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

func pricingOf(in, out *float64) *Pricing {
	if in == nil && out == nil {
		return nil
	}
	return &Pricing{InputPerMTok: in, OutputPerMTok: out}
}

func capabilitiesOf(c Capabilities) *Capabilities {
	if c.ToolCalling == nil && c.Streaming == nil && c.Vision == nil &&
		c.InputModalities == nil && c.OutputModalities == nil {
		return nil
	}
	return &c
}
