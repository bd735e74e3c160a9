package client

import (
	"context"
	"time"

	"modelhub/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client is a minimal interface to allow mocking in tests.
type Client interface {
	Post(ctx context.Context, tag string, rec map[string]any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

var _ Client = (*FluentdClient)(nil)

// NewFluentdClient 未設定 Host 時回傳 NoopClient
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if config.Fluentd.Host == "" {
		logger.Info("Fluentd disabled, access logs go to stdout only")
		return &NoopClient{}, func() {}, nil
	}

	prefix := "modelhub"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		// 非同步送出，fluentd 暫時不在也不影響啟動
		Async: true,
	})
	if err != nil {
		logger.Error("failed to create fluentd client", zap.Error(err))
		return nil, nil, err
	}
	c := &FluentdClient{client: f, tagPrefix: prefix}
	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close fluentd client", zap.Error(err))
		}
	}
	return c, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Tag builds a tag using the configured TagPrefix and provided suffix.
// e.g. suffix="request_log" => "modelhub.request_log"
func (c *FluentdClient) Tag(suffix string) string {
	if c.tagPrefix == "" {
		return suffix
	}
	return c.tagPrefix + "." + suffix
}

// Post sends a record to Fluentd; TagPrefix is prepended by the fluent logger.
func (c *FluentdClient) Post(ctx context.Context, tag string, rec map[string]any) error {
	// fluent-logger-golang doesn't support context cancellation directly;
	// we still accept ctx for API symmetry.
	return c.client.Post(tag, rec)
}

// --------------------
// Noop client (disabled mode)
// --------------------

type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, rec map[string]any) error { return nil }
func (n *NoopClient) Close() error                                                   { return nil }
