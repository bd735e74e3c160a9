package catalog

import (
	"encoding/json"
	"strings"

	"modelhub/internal/core"
)

type anthropicModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}

func anthropicRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m anthropicModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.ID == "" {
		return ModelRecord{}, errMissingID
	}
	return ModelRecord{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		OwnedBy:     string(core.ProviderAnthropic),
		CreatedAt:   parseTime(m.CreatedAt),
	}, nil
}

// Gemini 的 name 形如 "models/gemini-2.0-flash"
type googleModel struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	InputTokenLimit            *float64 `json:"inputTokenLimit"`
	OutputTokenLimit           *float64 `json:"outputTokenLimit"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

func googleRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m googleModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	id := strings.TrimPrefix(m.Name, "models/")
	if id == "" {
		return ModelRecord{}, errMissingID
	}
	return ModelRecord{
		ID:              id,
		ProviderModelID: m.Name,
		DisplayName:     m.DisplayName,
		OwnedBy:         string(core.ProviderGoogle),
		ContextLength:   intFrom(m.InputTokenLimit),
		MaxTokens:       intFrom(m.OutputTokenLimit),
		Capabilities: capabilitiesOf(Capabilities{
			Streaming: contains(m.SupportedGenerationMethods, "streamGenerateContent"),
		}),
	}, nil
}

type cohereModel struct {
	Name          string   `json:"name"`
	ContextLength *float64 `json:"context_length"`
	Endpoints     []string `json:"endpoints"`
	Features      []string `json:"features"`
}

func cohereRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m cohereModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.Name == "" {
		return ModelRecord{}, errMissingID
	}
	return ModelRecord{
		ID:            m.Name,
		OwnedBy:       string(core.ProviderCohere),
		ContextLength: intFrom(m.ContextLength),
		Capabilities: capabilitiesOf(Capabilities{
			ToolCalling: contains(m.Features, "tools", "strict_tools"),
			Vision:      contains(m.Features, "vision"),
		}),
	}, nil
}

// Ollama /api/tags 列出本機已下載的模型
type ollamaModel struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	ModifiedAt string `json:"modified_at"`
}

func ollamaRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m ollamaModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	id := m.Name
	if id == "" {
		id = m.Model
	}
	if id == "" {
		return ModelRecord{}, errMissingID
	}
	return ModelRecord{
		ID:              id,
		ProviderModelID: m.Model,
		CreatedAt:       parseTime(m.ModifiedAt),
	}, nil
}
