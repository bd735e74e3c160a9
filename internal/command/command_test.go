package command

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/client"
	"modelhub/internal/database/redis/repository"
	commandHandler "modelhub/internal/command/handler"
	"modelhub/internal/service"
	"modelhub/internal/service/catalog"
	"modelhub/internal/telemetry"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	root, out, _ := newTestRootWithRedis(t)
	return root, out
}

func newTestRootWithRedis(t *testing.T) (*cobra.Command, *bytes.Buffer, *repository.RefreshLimitRepository) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	limitRepo := repository.NewRefreshLimitRepository(&telemetry.Trace{}, client.NewRedisClientFrom(logger, rdb))
	conf := &config.Configuration{Catalog: config.Catalog{RefreshLimit: config.RefreshLimit{Count: 3, WindowSeconds: 60}}}

	fallback, err := catalog.NewStaticFallback()
	require.NoError(t, err)
	vendors := catalog.Vendors{
		core.ProviderOpenAI: catalog.VendorFunc(func(ctx context.Context) ([]byte, error) {
			return []byte(`{"data":[{"id":"gpt-4o"},{"id":"gpt-4o-mini"}]}`), nil
		}),
	}
	registry := catalog.NewRegistry(logger, &telemetry.Trace{}, &telemetry.Metric{}, &config.Configuration{}, vendors, fallback, nil)
	svc := service.NewCatalogService(logger, &telemetry.Trace{}, registry)

	root := &cobra.Command{Use: "app"}
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	Register(root, func() (*Command, func(), error) {
		return NewCommand(
			commandHandler.NewCatalogHandler(logger, svc),
			commandHandler.NewQuotaHandler(logger, conf, limitRepo),
		), func() {}, nil
	})
	return root, out, limitRepo
}

func TestCatalogDump_SingleProvider(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"catalog", "dump", "-p", "openai"})
	require.NoError(t, root.Execute())

	var got []catalog.ProviderCatalog
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, core.ProviderOpenAI, got[0].Provider)
	assert.Equal(t, catalog.SourceLive, got[0].Source)
	assert.Len(t, got[0].Models, 2)
}

func TestCatalogDump_All(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"catalog", "dump"})
	require.NoError(t, root.Execute())

	var got []catalog.ProviderCatalog
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, len(core.Providers))
	for i, spec := range core.Providers {
		assert.Equal(t, spec.Name, got[i].Provider)
	}
}

func TestCatalogDump_UnknownProvider(t *testing.T) {
	root, _ := newTestRoot(t)
	root.SetArgs([]string{"catalog", "dump", "-p", "openai,acme"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme")
}

func TestCatalogProviders(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"catalog", "providers"})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(core.Providers))
	assert.True(t, strings.HasPrefix(lines[0], "openai"))
	assert.Contains(t, lines[0], "live")
	assert.Contains(t, lines[1], "static")
}

func TestCatalogQuota(t *testing.T) {
	root, out, limitRepo := newTestRootWithRedis(t)
	_, _, err := limitRepo.Consume(context.Background(), "10.0.0.9", core.ProviderOpenAI, 3, 60)
	require.NoError(t, err)

	root.SetArgs([]string{"catalog", "quota", "10.0.0.9", "openai"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "remaining=2/3")

	out.Reset()
	root.SetArgs([]string{"catalog", "quota", "10.0.0.9", "openai", "--reset"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "remaining=3/3")
}

func TestCatalogQuota_UnknownProvider(t *testing.T) {
	root, _ := newTestRoot(t)
	root.SetArgs([]string{"catalog", "quota", "10.0.0.9", "acme"})
	assert.ErrorContains(t, root.Execute(), "unknown provider")
}
