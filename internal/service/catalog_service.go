package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"modelhub/internal/core"
	cErr "modelhub/internal/pkg/error"
	"modelhub/internal/service/catalog"
	"modelhub/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogService handler 與 command 共用的目錄操作；負責把 catalog 錯誤轉成 API 錯誤
type CatalogService struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	registry *catalog.Registry
}

func NewCatalogService(logger *zap.Logger, trace *telemetry.Trace, registry *catalog.Registry) *CatalogService {
	return &CatalogService{logger: logger, trace: trace, registry: registry}
}

// ModelLocation 模型所屬的 provider 與目錄內的紀錄
type ModelLocation struct {
	Provider core.ProviderName   `json:"provider"`
	Model    catalog.ModelRecord `json:"model"`
}

func (s *CatalogService) Providers() []catalog.ProviderStatus {
	return s.registry.Providers()
}

// ProviderModels refresh 為 true 時不看 TTL 直接重抓
func (s *CatalogService) ProviderModels(ctx context.Context, provider string, refresh bool) (catalog.ProviderCatalog, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	span.SetAttributes(attribute.String("ai.provider", provider), attribute.Bool("catalog.refresh", refresh))

	var (
		c   catalog.ProviderCatalog
		err error
	)
	if refresh {
		c, err = s.registry.Refresh(ctx, core.ProviderName(provider))
	} else {
		c, err = s.registry.GetModels(ctx, core.ProviderName(provider))
	}
	if err != nil {
		appErr := s.translate(provider, err)
		end(appErr)
		return catalog.ProviderCatalog{}, appErr
	}
	span.SetAttributes(
		attribute.String("catalog.source", string(c.Source)),
		attribute.Int("catalog.model_count", len(c.Models)),
	)
	end(nil)
	return c, nil
}

func (s *CatalogService) AllModels(ctx context.Context) []catalog.ProviderCatalog {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	all := s.registry.GetAll(ctx)
	span.SetAttributes(attribute.Int("catalog.providers", len(all)))
	return all
}

// ModelsOf 只載入指定的 provider，順序與傳入相同
func (s *CatalogService) ModelsOf(ctx context.Context, providers []core.ProviderName) ([]catalog.ProviderCatalog, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	out := make([]catalog.ProviderCatalog, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			c, err := s.registry.GetModels(gctx, p)
			if err != nil {
				return s.translate(string(p), err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		end(err)
		return nil, err
	}
	end(nil)
	return out, nil
}

// ProviderModel 在指定 provider 的目錄中找單一模型（會照 TTL 規則刷新）
func (s *CatalogService) ProviderModel(ctx context.Context, provider, modelID string) (catalog.ModelRecord, error) {
	c, err := s.ProviderModels(ctx, provider, false)
	if err != nil {
		return catalog.ModelRecord{}, err
	}
	for _, m := range c.Models {
		if m.ID == modelID || m.ProviderModelID == modelID {
			return m, nil
		}
	}
	return catalog.ModelRecord{}, cErr.ModelNotFound(fmt.Sprintf("model %q not found in %s catalog", modelID, provider))
}

// LocateModel 只看目前快取；尚未載入的 provider 不會被搜尋
func (s *CatalogService) LocateModel(ctx context.Context, modelID string) (ModelLocation, error) {
	_, span, end := s.trace.WithSpan(ctx)
	span.SetAttributes(attribute.String("catalog.model_id", modelID))

	modelID = strings.TrimSpace(modelID)
	p, ok := s.registry.FindProviderForModel(modelID)
	if !ok {
		appErr := cErr.ModelNotFound(fmt.Sprintf("model %q is not in any cached catalog", modelID))
		end(appErr)
		return ModelLocation{}, appErr
	}
	span.SetAttributes(attribute.String("ai.provider", string(p)))
	end(nil)

	loc := ModelLocation{Provider: p}
	for _, c := range s.registry.Cached() {
		if c.Provider != p {
			continue
		}
		for _, m := range c.Models {
			if m.ID == modelID || m.ProviderModelID == modelID {
				loc.Model = m
				return loc, nil
			}
		}
	}
	return loc, nil
}

// Prewarm 依 TTL 規則載入所有 provider；新鮮的不會重抓
func (s *CatalogService) Prewarm(ctx context.Context) {
	all := s.registry.GetAll(ctx)
	var live, fallback, static, failed int
	for _, c := range all {
		switch c.Source {
		case catalog.SourceLive:
			live++
		case catalog.SourceFallback:
			fallback++
		case catalog.SourceStatic:
			static++
		}
		if c.LastError != nil {
			failed++
		}
	}
	s.logger.Info("[Catalog] prewarm done",
		zap.Int("providers", len(all)),
		zap.Int("live", live),
		zap.Int("fallback", fallback),
		zap.Int("static", static),
		zap.Int("with_error", failed),
	)
}

func (s *CatalogService) translate(provider string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrUnknownProvider):
		return cErr.ProviderNotFound(fmt.Sprintf("unknown provider %q", provider))
	case errors.Is(err, context.DeadlineExceeded):
		return cErr.GatewayTimeout(err.Error())
	case errors.Is(err, context.Canceled):
		return cErr.ServiceUnavailable("request cancelled")
	default:
		s.logger.Error("[Catalog] unexpected registry error", zap.String("provider", provider), zap.Error(err))
		return cErr.InternalServer(err.Error())
	}
}
