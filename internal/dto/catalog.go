package dto

import (
	"modelhub/internal/pkg/request"
	"modelhub/internal/service/catalog"
)

// /providers/:provider/...
type ProviderURIDto struct {
	Provider string `uri:"provider" json:"provider" binding:"required,max=64"`
}

// /models/:model/provider
type ModelURIDto struct {
	Model string `uri:"model" json:"model" binding:"required,max=256"`
}

// /providers/:provider/models/:model
type ProviderModelURIDto struct {
	Provider string `uri:"provider" json:"provider" binding:"required,max=64"`
	Model    string `uri:"model" json:"model" binding:"required,max=256"`
}

// GET /providers/:provider/models?refresh=true 等同 POST refresh（仍受節流限制）
type ListModelsQueryDto struct {
	Refresh bool `form:"refresh" json:"refresh"`
}

// GET /models?provider=openai&provider=groq 只回傳指定 provider
type AllModelsQueryDto struct {
	Providers []string `form:"provider" json:"provider" binding:"omitempty,dive,max=64"`
}

func (ProviderURIDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Provider.required": "provider is required",
		"Provider.max":      "provider name is too long",
	}
}

func (ModelURIDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Model.required": "model id is required",
		"Model.max":      "model id is too long",
	}
}

type ProvidersResponseDto struct {
	Providers []catalog.ProviderStatus `json:"providers"`
}

type AllModelsResponseDto struct {
	Catalogs []catalog.ProviderCatalog `json:"catalogs"`
}

type ModelLocationResponseDto struct {
	Model    string              `json:"model"`
	Provider string              `json:"provider"`
	Record   catalog.ModelRecord `json:"record"`
}
