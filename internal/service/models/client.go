package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/service/catalog"
	"modelhub/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// 單次 list 回應上限，避免異常的供應商把記憶體吃光
const maxBodyBytes = 32 << 20

// Client 呼叫單一供應商的 list models API，回傳解壓後的原始 payload
type Client struct {
	HTTPClient *http.Client
	trace      *telemetry.Trace
	spec       core.ProviderSpec
	url        string
	apiKey     string
	limiter    *rate.Limiter
}

var _ catalog.VendorClient = (*Client)(nil)

func NewClient(
	trace *telemetry.Trace,
	client *http.Client,
	spec core.ProviderSpec,
	conf config.CatalogProvider,
) (*Client, error) {
	url, err := ResolveURL(spec, conf.BaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		HTTPClient: client,
		trace:      trace,
		spec:       spec,
		url:        url,
		apiKey:     strings.TrimSpace(conf.APIKey),
	}
	if conf.RatePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(conf.RatePerMinute)/60), 1)
	}
	return c, nil
}

func (c *Client) FetchModels(ctx context.Context) ([]byte, error) {
	ctx, span, end := c.trace.WithSpan(ctx, string(core.SpanVendorList))
	var cause error
	defer func() { end(cause) }()

	span.SetAttributes(
		attribute.String("ai.provider", string(c.spec.Name)),
		attribute.String("http.url", c.url),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			cause = catalog.Timeout(c.spec.Name, fmt.Errorf("rate limiter: %w", err))
			return nil, cause
		}
	}

	// 建立 GET 請求
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		cause = catalog.Unavailable(c.spec.Name, err)
		return nil, cause
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")
	// 自行指定後 net/http 不會自動解 gzip，統一交給 decodeBody
	req.Header.Set("Accept-Encoding", "br, zstd, gzip")

	// 發送
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		cause = err
		return nil, cause
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		cause = err
		return nil, cause
	}

	// 狀態碼處理
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := decodeBody(raw, resp.Header)
		cause = catalog.Unavailable(c.spec.Name, fmt.Errorf("%s non-2xx: %s %s", c.spec.Name, resp.Status, trimBody(body)))
		return nil, cause
	}

	body, err := decodeBody(raw, resp.Header)
	if err != nil {
		cause = catalog.Malformed(c.spec.Name, fmt.Errorf("decompress %s response: %w", resp.Header.Get("Content-Encoding"), err))
		return nil, cause
	}
	span.SetAttributes(attribute.Int("http.response_size", len(body)))
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.spec.Name == core.ProviderAnthropic {
		req.Header.Set("anthropic-version", core.AnthropicVersion)
	}
	if c.apiKey == "" {
		return
	}
	switch c.spec.Auth {
	case core.AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	case core.AuthXAPIKey:
		req.Header.Set("x-api-key", c.apiKey)
	case core.AuthGoogAPIKey:
		req.Header.Set("x-goog-api-key", c.apiKey)
	case core.AuthAzureAPIKey:
		req.Header.Set("api-key", c.apiKey)
	}
}

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 3000 {
		return s[:3000] + "..."
	}
	return s
}
