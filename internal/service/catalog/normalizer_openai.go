package catalog

import (
	"encoding/json"
	"strings"

	"modelhub/internal/core"
)

// OpenAI 相容格式：{"data":[{"id","created","owned_by",...}]}
// groq / fireworks / deepinfra 等會多帶 context 長度或能力旗標
type openAIModel struct {
	ID                 string   `json:"id"`
	Created            *float64 `json:"created"`
	OwnedBy            string   `json:"owned_by"`
	ContextWindow      *float64 `json:"context_window"`
	ContextLength      *float64 `json:"context_length"`
	MaxModelLen        *float64 `json:"max_model_len"`
	MaxCompletionToken *float64 `json:"max_completion_tokens"`
	SupportsTools      *bool    `json:"supports_tools"`
	SupportsImageInput *bool    `json:"supports_image_input"`
}

func openAIRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m openAIModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.ID == "" {
		return ModelRecord{}, errMissingID
	}
	return ModelRecord{
		ID:            m.ID,
		OwnedBy:       m.OwnedBy,
		CreatedAt:     unixTime(m.Created),
		ContextLength: intFrom(firstFloat(m.ContextWindow, m.ContextLength, m.MaxModelLen)),
		MaxTokens:     intFrom(m.MaxCompletionToken),
		Capabilities: capabilitiesOf(Capabilities{
			ToolCalling: m.SupportsTools,
			Vision:      m.SupportsImageInput,
		}),
	}, nil
}

type mistralModel struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Created          *float64 `json:"created"`
	OwnedBy          string   `json:"owned_by"`
	MaxContextLength *float64 `json:"max_context_length"`
	Capabilities     *struct {
		CompletionChat  *bool `json:"completion_chat"`
		FunctionCalling *bool `json:"function_calling"`
		Vision          *bool `json:"vision"`
	} `json:"capabilities"`
}

func mistralRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m mistralModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.ID == "" {
		return ModelRecord{}, errMissingID
	}
	rec := ModelRecord{
		ID:            m.ID,
		DisplayName:   m.Name,
		OwnedBy:       m.OwnedBy,
		CreatedAt:     unixTime(m.Created),
		ContextLength: intFrom(m.MaxContextLength),
	}
	if m.Capabilities != nil {
		rec.Capabilities = capabilitiesOf(Capabilities{
			ToolCalling: m.Capabilities.FunctionCalling,
			Vision:      m.Capabilities.Vision,
		})
	}
	return rec, nil
}

type openRouterModel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Created       *float64 `json:"created"`
	ContextLength *float64 `json:"context_length"`
	Architecture  *struct {
		InputModalities  []string `json:"input_modalities"`
		OutputModalities []string `json:"output_modalities"`
	} `json:"architecture"`
	Pricing *struct {
		Prompt     string `json:"prompt"`
		Completion string `json:"completion"`
	} `json:"pricing"`
	TopProvider *struct {
		MaxCompletionTokens *float64 `json:"max_completion_tokens"`
	} `json:"top_provider"`
	SupportedParameters []string `json:"supported_parameters"`
}

func openRouterRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m openRouterModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.ID == "" {
		return ModelRecord{}, errMissingID
	}
	rec := ModelRecord{
		ID:            m.ID,
		DisplayName:   m.Name,
		CreatedAt:     unixTime(m.Created),
		ContextLength: intFrom(m.ContextLength),
	}
	// "openai/gpt-4o" 前綴即原廠
	if i := strings.Index(m.ID, "/"); i > 0 {
		rec.OwnedBy = m.ID[:i]
	}
	caps := Capabilities{ToolCalling: contains(m.SupportedParameters, "tools")}
	if m.Architecture != nil {
		caps.InputModalities = m.Architecture.InputModalities
		caps.OutputModalities = m.Architecture.OutputModalities
		caps.Vision = contains(m.Architecture.InputModalities, "image")
	}
	rec.Capabilities = capabilitiesOf(caps)
	if m.Pricing != nil {
		rec.Pricing = pricingOf(perTokenToPerMTok(m.Pricing.Prompt), perTokenToPerMTok(m.Pricing.Completion))
	}
	if m.TopProvider != nil {
		rec.MaxTokens = intFrom(m.TopProvider.MaxCompletionTokens)
	}
	return rec, nil
}

// Together 價格已是每百萬 token
type togetherModel struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name"`
	Organization  string   `json:"organization"`
	Created       *float64 `json:"created"`
	ContextLength *float64 `json:"context_length"`
	Pricing       *struct {
		Input  *float64 `json:"input"`
		Output *float64 `json:"output"`
	} `json:"pricing"`
}

func togetherRecord(p core.ProviderName, item json.RawMessage) (ModelRecord, error) {
	var m togetherModel
	if err := json.Unmarshal(item, &m); err != nil {
		return ModelRecord{}, err
	}
	if m.ID == "" {
		return ModelRecord{}, errMissingID
	}
	rec := ModelRecord{
		ID:            m.ID,
		DisplayName:   m.DisplayName,
		OwnedBy:       m.Organization,
		CreatedAt:     unixTime(m.Created),
		ContextLength: intFrom(m.ContextLength),
	}
	if m.Pricing != nil {
		rec.Pricing = pricingOf(nonNegative(m.Pricing.Input), nonNegative(m.Pricing.Output))
	}
	return rec, nil
}
