package core

// ProviderName 目錄支援的 LLM 供應商（封閉集合）
type ProviderName string

const (
	ProviderOpenAI      ProviderName = "openai"
	ProviderAnthropic   ProviderName = "anthropic"
	ProviderGoogle      ProviderName = "google"
	ProviderMistral     ProviderName = "mistral"
	ProviderGroq        ProviderName = "groq"
	ProviderDeepSeek    ProviderName = "deepseek"
	ProviderXAI         ProviderName = "xai"
	ProviderCohere      ProviderName = "cohere"
	ProviderOpenRouter  ProviderName = "openrouter"
	ProviderTogether    ProviderName = "together"
	ProviderFireworks   ProviderName = "fireworks"
	ProviderPerplexity  ProviderName = "perplexity"
	ProviderCerebras    ProviderName = "cerebras"
	ProviderDeepInfra   ProviderName = "deepinfra"
	ProviderHuggingFace ProviderName = "huggingface"
	ProviderNvidia      ProviderName = "nvidia"
	ProviderSambaNova   ProviderName = "sambanova"
	ProviderNovita      ProviderName = "novita"
	ProviderHyperbolic  ProviderName = "hyperbolic"
	ProviderMoonshot    ProviderName = "moonshot"
	ProviderZhipu       ProviderName = "zhipu"
	ProviderAzure       ProviderName = "azure"
	ProviderOllama      ProviderName = "ollama"
	ProviderLMStudio    ProviderName = "lmstudio"
	ProviderCustom      ProviderName = "custom"
)

// ModelShape 供應商 list models 回應的原始格式
type ModelShape string

const (
	ShapeOpenAI     ModelShape = "openai"
	ShapeMistral    ModelShape = "mistral"
	ShapeAnthropic  ModelShape = "anthropic"
	ShapeGoogle     ModelShape = "google"
	ShapeCohere     ModelShape = "cohere"
	ShapeOpenRouter ModelShape = "openrouter"
	ShapeTogether   ModelShape = "together"
	ShapeOllama     ModelShape = "ollama"
	// 沒有 list endpoint，只能用內建清單
	ShapeNone ModelShape = ""
)

// AuthScheme 供應商金鑰放在哪個 header
type AuthScheme string

const (
	AuthBearer      AuthScheme = "bearer"
	AuthXAPIKey     AuthScheme = "x-api-key"
	AuthGoogAPIKey  AuthScheme = "x-goog-api-key"
	AuthAzureAPIKey AuthScheme = "api-key"
	AuthNone        AuthScheme = "none"
)

const (
	AnthropicVersion = "2023-06-01"

	halfDayMs int64 = 12 * 60 * 60 * 1000
)

type ProviderSpec struct {
	Name        ProviderName
	DisplayName string
	Shape       ModelShape
	// list models 的完整 URL；BaseURL 設定可覆寫 host 部分
	ModelsURL string
	Auth      AuthScheme
	// 0 = 使用 config 預設
	DefaultTTLMs int64
	// 本機服務不需要金鑰
	Keyless bool
	// 必須由設定提供 BaseURL（例如 azure / custom）
	RequiresBaseURL bool
}

// Providers 宣告順序即 GetAll 的輸出順序
var Providers = []ProviderSpec{
	{Name: ProviderOpenAI, DisplayName: "OpenAI", Shape: ShapeOpenAI, ModelsURL: OpenAIAPIBaseURL + "/v1/models", Auth: AuthBearer},
	{Name: ProviderAnthropic, DisplayName: "Anthropic", Shape: ShapeAnthropic, ModelsURL: "https://api.anthropic.com/v1/models?limit=1000", Auth: AuthXAPIKey},
	{Name: ProviderGoogle, DisplayName: "Google", Shape: ShapeGoogle, ModelsURL: GeminiAPIBaseURL + "/v1beta/models?pageSize=1000", Auth: AuthGoogAPIKey},
	{Name: ProviderMistral, DisplayName: "Mistral", Shape: ShapeMistral, ModelsURL: "https://api.mistral.ai/v1/models", Auth: AuthBearer},
	{Name: ProviderGroq, DisplayName: "Groq", Shape: ShapeOpenAI, ModelsURL: "https://api.groq.com/openai/v1/models", Auth: AuthBearer},
	{Name: ProviderDeepSeek, DisplayName: "DeepSeek", Shape: ShapeOpenAI, ModelsURL: "https://api.deepseek.com/models", Auth: AuthBearer},
	{Name: ProviderXAI, DisplayName: "xAI", Shape: ShapeOpenAI, ModelsURL: "https://api.x.ai/v1/models", Auth: AuthBearer},
	{Name: ProviderCohere, DisplayName: "Cohere", Shape: ShapeCohere, ModelsURL: "https://api.cohere.com/v1/models?page_size=1000", Auth: AuthBearer},
	{Name: ProviderOpenRouter, DisplayName: "OpenRouter", Shape: ShapeOpenRouter, ModelsURL: "https://openrouter.ai/api/v1/models", Auth: AuthBearer, DefaultTTLMs: halfDayMs, Keyless: true},
	{Name: ProviderTogether, DisplayName: "Together AI", Shape: ShapeTogether, ModelsURL: "https://api.together.xyz/v1/models", Auth: AuthBearer, DefaultTTLMs: halfDayMs},
	{Name: ProviderFireworks, DisplayName: "Fireworks AI", Shape: ShapeOpenAI, ModelsURL: "https://api.fireworks.ai/inference/v1/models", Auth: AuthBearer},
	{Name: ProviderPerplexity, DisplayName: "Perplexity", Shape: ShapeNone},
	{Name: ProviderCerebras, DisplayName: "Cerebras", Shape: ShapeOpenAI, ModelsURL: "https://api.cerebras.ai/v1/models", Auth: AuthBearer},
	{Name: ProviderDeepInfra, DisplayName: "DeepInfra", Shape: ShapeOpenAI, ModelsURL: "https://api.deepinfra.com/v1/openai/models", Auth: AuthBearer},
	{Name: ProviderHuggingFace, DisplayName: "Hugging Face", Shape: ShapeOpenAI, ModelsURL: "https://router.huggingface.co/v1/models", Auth: AuthBearer},
	{Name: ProviderNvidia, DisplayName: "NVIDIA NIM", Shape: ShapeOpenAI, ModelsURL: "https://integrate.api.nvidia.com/v1/models", Auth: AuthBearer},
	{Name: ProviderSambaNova, DisplayName: "SambaNova", Shape: ShapeOpenAI, ModelsURL: "https://api.sambanova.ai/v1/models", Auth: AuthBearer},
	{Name: ProviderNovita, DisplayName: "Novita AI", Shape: ShapeOpenAI, ModelsURL: "https://api.novita.ai/v3/openai/models", Auth: AuthBearer},
	{Name: ProviderHyperbolic, DisplayName: "Hyperbolic", Shape: ShapeOpenAI, ModelsURL: "https://api.hyperbolic.xyz/v1/models", Auth: AuthBearer},
	{Name: ProviderMoonshot, DisplayName: "Moonshot AI", Shape: ShapeOpenAI, ModelsURL: "https://api.moonshot.ai/v1/models", Auth: AuthBearer},
	{Name: ProviderZhipu, DisplayName: "Zhipu AI", Shape: ShapeNone},
	{Name: ProviderAzure, DisplayName: "Azure OpenAI", Shape: ShapeOpenAI, ModelsURL: "/openai/models?api-version=2024-10-21", Auth: AuthAzureAPIKey, RequiresBaseURL: true},
	{Name: ProviderOllama, DisplayName: "Ollama", Shape: ShapeOllama, ModelsURL: "http://localhost:11434/api/tags", Auth: AuthNone, Keyless: true},
	{Name: ProviderLMStudio, DisplayName: "LM Studio", Shape: ShapeOpenAI, ModelsURL: "http://localhost:1234/v1/models", Auth: AuthNone, Keyless: true},
	{Name: ProviderCustom, DisplayName: "Custom (OpenAI compatible)", Shape: ShapeOpenAI, ModelsURL: "/v1/models", Auth: AuthBearer, Keyless: true, RequiresBaseURL: true},
}

func LookupProvider(name ProviderName) (ProviderSpec, bool) {
	for _, p := range Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderSpec{}, false
}

func IsValidProviderName(name string) bool {
	_, ok := LookupProvider(ProviderName(name))
	return ok
}

const (
	OpenAIAPIBaseURL = "https://api.openai.com"
	GeminiAPIBaseURL = "https://generativelanguage.googleapis.com"
)
