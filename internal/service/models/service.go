package models

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/service/catalog"
	"modelhub/internal/telemetry"

	"go.uber.org/zap"
)

// Eligible provider 是否能實際呼叫 list API：
// 有 list endpoint、未停用、有金鑰（或不需要）、需要 BaseURL 時已設定
func Eligible(spec core.ProviderSpec, conf config.CatalogProvider) bool {
	if conf.Disabled || spec.Shape == core.ShapeNone || spec.ModelsURL == "" {
		return false
	}
	if spec.RequiresBaseURL && strings.TrimSpace(conf.BaseURL) == "" {
		return false
	}
	if spec.Keyless || spec.Auth == core.AuthNone {
		return true
	}
	return strings.TrimSpace(conf.APIKey) != ""
}

// ResolveURL RequiresBaseURL 的 provider 以 BaseURL 為前綴；其他 provider 的 BaseURL 只覆寫 scheme 與 host
func ResolveURL(spec core.ProviderSpec, baseURL string) (string, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if spec.RequiresBaseURL {
		if baseURL == "" {
			return "", fmt.Errorf("%s: base url is required", spec.Name)
		}
		return baseURL + spec.ModelsURL, nil
	}
	if baseURL == "" {
		return spec.ModelsURL, nil
	}
	target, err := url.Parse(spec.ModelsURL)
	if err != nil {
		return "", fmt.Errorf("%s: parse models url: %w", spec.Name, err)
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%s: invalid base url %q", spec.Name, baseURL)
	}
	target.Scheme = base.Scheme
	target.Host = base.Host
	return target.String(), nil
}

// NewVendors 依設定建立所有可用的 VendorClient；無法建立的 provider 改走內建清單
func NewVendors(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	client *http.Client,
) catalog.Vendors {
	vendors := make(catalog.Vendors)
	for _, spec := range core.Providers {
		pc := conf.Catalog.Provider(string(spec.Name))
		if !Eligible(spec, pc) {
			continue
		}
		c, err := NewClient(trace, client, spec, pc)
		if err != nil {
			logger.Warn("[Catalog] vendor client disabled",
				zap.String("provider", string(spec.Name)),
				zap.Error(err),
			)
			continue
		}
		vendors[spec.Name] = c
	}
	logger.Info("[Catalog] vendor clients ready", zap.Int("live", len(vendors)), zap.Int("providers", len(core.Providers)))
	return vendors
}
