package handler

import (
	"strings"

	"modelhub/internal/dto"
	cErr "modelhub/internal/pkg/error"
	"modelhub/internal/pkg/response"
	"modelhub/internal/service"
	"modelhub/internal/service/catalog"
	"modelhub/internal/telemetry"
	"modelhub/utils/validate"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type CatalogHandler struct {
	trace          *telemetry.Trace
	catalogService *service.CatalogService
}

func NewCatalogHandler(trace *telemetry.Trace, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{trace: trace, catalogService: catalogService}
}

// ListProviders 列出所有 provider 與其快取狀態
// @Summary 取得 provider 列表
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response{data=dto.ProvidersResponseDto}
// @Router /catalog/v1/providers [get]
func (h *CatalogHandler) ListProviders(c *gin.Context) {
	_, span, end := h.trace.WithSpan(c)
	defer end(nil)

	providers := h.catalogService.Providers()
	span.SetAttributes(attribute.Int("catalog.providers", len(providers)))
	response.Success(c, dto.ProvidersResponseDto{Providers: providers})
}

// ListProviderModels 取得單一 provider 的模型目錄（過期才會向供應商重抓）
// @Summary 取得 provider 模型目錄
// @Description 供應商失敗時仍回 200，內容為上一次的目錄或內建清單，並附上 lastError
// @Tags Catalog
// @Produce json
// @Param provider path string true "provider（例如 openai、anthropic）"
// @Param refresh query bool false "忽略 TTL 強制重抓"
// @Success 200 {object} response.Response{data=catalog.ProviderCatalog}
// @Failure 400 {object} response.Response "Bad Request"
// @Failure 404 {object} response.Response "Provider Not Found"
// @Failure 429 {object} response.Response "Too Many Requests"
// @Router /catalog/v1/providers/{provider}/models [get]
func (h *CatalogHandler) ListProviderModels(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.ProviderURIDto
	if cause, respErr := validate.BindURI(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var query dto.ListModelsQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	span.SetAttributes(attribute.String("ai.provider", uri.Provider))

	result, err := h.catalogService.ProviderModels(ctx, normalizeProvider(uri.Provider), query.Refresh)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// RefreshProvider 忽略 TTL 立即重抓；同 provider 進行中的抓取會合併
// @Summary 強制刷新 provider 模型目錄
// @Tags Catalog
// @Produce json
// @Param provider path string true "provider"
// @Success 200 {object} response.Response{data=catalog.ProviderCatalog}
// @Failure 404 {object} response.Response "Provider Not Found"
// @Failure 429 {object} response.Response "Too Many Requests"
// @Router /catalog/v1/providers/{provider}/refresh [post]
func (h *CatalogHandler) RefreshProvider(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.ProviderURIDto
	if cause, respErr := validate.BindURI(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	span.SetAttributes(attribute.String("ai.provider", uri.Provider))

	result, err := h.catalogService.ProviderModels(ctx, normalizeProvider(uri.Provider), true)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// GetProviderModel 取得單一模型
// @Summary 取得 provider 內的單一模型
// @Tags Catalog
// @Produce json
// @Param provider path string true "provider"
// @Param model path string true "模型 ID（可為供應商原始 ID）"
// @Success 200 {object} response.Response{data=catalog.ModelRecord}
// @Failure 404 {object} response.Response "Provider / Model Not Found"
// @Router /catalog/v1/providers/{provider}/models/{model} [get]
func (h *CatalogHandler) GetProviderModel(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.ProviderModelURIDto
	if cause, respErr := validate.BindURI(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	record, err := h.catalogService.ProviderModel(ctx, normalizeProvider(uri.Provider), trimModel(uri.Model))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, record)
}

// ListAllModels 所有 provider 的目錄，依宣告順序排列
// @Summary 取得所有 provider 的模型目錄
// @Tags Catalog
// @Produce json
// @Param provider query []string false "只回傳指定 provider（可重複或以逗號分隔）"
// @Success 200 {object} response.Response{data=dto.AllModelsResponseDto}
// @Failure 400 {object} response.Response "Bad Request"
// @Router /catalog/v1/models [get]
func (h *CatalogHandler) ListAllModels(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	var query dto.AllModelsQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	only, err := validate.ParseProviders(query.Providers)
	if err != nil {
		end(err)
		response.AbortWithError(c, cErr.ProviderNotFound(err.Error()))
		return
	}

	var all []catalog.ProviderCatalog
	if len(only) > 0 {
		all, err = h.catalogService.ModelsOf(ctx, only)
		if err != nil {
			end(err)
			response.AbortWithError(c, err)
			return
		}
	} else {
		all = h.catalogService.AllModels(ctx)
	}
	span.SetAttributes(attribute.Int("catalog.providers", len(all)))
	response.Success(c, dto.AllModelsResponseDto{Catalogs: all})
}

// FindModelProvider 依模型 ID 找出所屬 provider（只查目前快取）
// @Summary 查詢模型所屬 provider
// @Tags Catalog
// @Produce json
// @Param model path string true "模型 ID"
// @Success 200 {object} response.Response{data=dto.ModelLocationResponseDto}
// @Failure 404 {object} response.Response "Model Not Found"
// @Router /catalog/v1/models/{model}/provider [get]
func (h *CatalogHandler) FindModelProvider(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.ModelURIDto
	if cause, respErr := validate.BindURI(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	model := trimModel(uri.Model)
	loc, err := h.catalogService.LocateModel(ctx, model)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dto.ModelLocationResponseDto{
		Model:    model,
		Provider: string(loc.Provider),
		Record:   loc.Model,
	})
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// 含斜線的模型 ID（例如 openrouter 的 "vendor/model"）需以 %2F 編碼，router 會還原
func trimModel(m string) string {
	return strings.TrimSpace(m)
}
