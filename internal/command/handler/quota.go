package command

import (
	"errors"
	"fmt"
	"strings"

	"modelhub/config"
	"modelhub/internal/core"
	"modelhub/internal/database/redis/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// QuotaHandler 查詢或重設強制刷新配額（Redis）
type QuotaHandler struct {
	logger     *zap.Logger
	limit      config.RefreshLimit
	repository *repository.RefreshLimitRepository
}

func NewQuotaHandler(logger *zap.Logger, conf *config.Configuration, repository *repository.RefreshLimitRepository) *QuotaHandler {
	return &QuotaHandler{
		logger:     logger,
		limit:      conf.Catalog.RefreshLimit,
		repository: repository,
	}
}

// Quota args: <client-ip> <provider>；--reset 先刪除配額再查詢
func (handler *QuotaHandler) Quota(cmd *cobra.Command, args []string) error {
	clientIP := strings.TrimSpace(args[0])
	provider := strings.ToLower(strings.TrimSpace(args[1]))
	if !core.IsValidProviderName(provider) {
		return fmt.Errorf("unknown provider %q", provider)
	}
	if handler.limit.Count <= 0 {
		return errors.New("refresh limit is disabled (catalog.refresh_limit.count <= 0)")
	}
	p := core.ProviderName(provider)

	reset, _ := cmd.Flags().GetBool("reset")
	if reset {
		if err := handler.repository.Reset(cmd.Context(), clientIP, p); err != nil {
			return err
		}
		handler.logger.Info("[RefreshLimit] quota reset", zap.String("client", clientIP), zap.String("provider", provider))
	}

	remaining, ttl, err := handler.repository.GetCurrent(cmd.Context(), clientIP, p, handler.limit.Count)
	if errors.Is(err, repository.ErrRedisDisabled) {
		return errors.New("redis is not configured")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s remaining=%d/%d reset_in=%ds\n", clientIP, provider, remaining, handler.limit.Count, ttl)
	return nil
}
