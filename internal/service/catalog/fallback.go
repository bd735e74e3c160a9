package catalog

import (
	_ "embed"
	"fmt"

	"modelhub/internal/core"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCatalogYAML []byte

// FallbackSource 供應商無法連線且沒有舊資料時使用的內建清單；不會失敗
type FallbackSource interface {
	Get(p core.ProviderName) []ModelRecord
}

type StaticFallback struct {
	models map[core.ProviderName][]ModelRecord
}

// NewStaticFallback 載入內建的 defaults.yaml
func NewStaticFallback() (*StaticFallback, error) {
	return ParseStaticFallback(defaultCatalogYAML)
}

// ParseStaticFallback yaml 格式為 provider -> []ModelRecord
func ParseStaticFallback(data []byte) (*StaticFallback, error) {
	var raw map[string][]ModelRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse fallback catalog: %w", err)
	}
	models := make(map[core.ProviderName][]ModelRecord, len(raw))
	for name, list := range raw {
		p := core.ProviderName(name)
		if _, ok := core.LookupProvider(p); !ok {
			return nil, fmt.Errorf("parse fallback catalog: unknown provider %q", name)
		}
		out := make([]ModelRecord, 0, len(list))
		for _, m := range list {
			if m.ID == "" {
				continue
			}
			out = append(out, fillRequired(p, m))
		}
		models[p] = out
	}
	return &StaticFallback{models: models}, nil
}

// Get 沒有預設值的 provider 回傳空清單
func (f *StaticFallback) Get(p core.ProviderName) []ModelRecord {
	return cloneModels(f.models[p])
}
