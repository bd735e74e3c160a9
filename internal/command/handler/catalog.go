package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"modelhub/internal/service"
	"modelhub/internal/service/catalog"
	"modelhub/utils/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	logger         *zap.Logger
	catalogService *service.CatalogService
}

func NewCatalogHandler(logger *zap.Logger, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		logger:         logger,
		catalogService: catalogService,
	}
}

// Dump 抓取目錄並以 JSON 輸出；--provider 可重複或逗號分隔
func (handler *CatalogHandler) Dump(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("provider")
	refresh, _ := cmd.Flags().GetBool("refresh")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	providers, err := validate.ParseProviders(names)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var out []catalog.ProviderCatalog
	if len(providers) == 0 && !refresh {
		out = handler.catalogService.AllModels(ctx)
	} else {
		if len(providers) == 0 {
			for _, st := range handler.catalogService.Providers() {
				providers = append(providers, st.Name)
			}
		}
		for _, p := range providers {
			c, err := handler.catalogService.ProviderModels(ctx, string(p), refresh)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			out = append(out, c)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Providers 列出 provider 設定（不會呼叫供應商）
func (handler *CatalogHandler) Providers(cmd *cobra.Command, args []string) error {
	for _, st := range handler.catalogService.Providers() {
		mode := "static"
		if st.Live {
			mode = "live"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-7s ttl=%-10s timeout=%s\n",
			st.Name, mode,
			time.Duration(st.TTLMs)*time.Millisecond,
			time.Duration(st.TimeoutMs)*time.Millisecond,
		)
	}
	return nil
}
