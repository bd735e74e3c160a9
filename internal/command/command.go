package command

import (
	"time"

	commandHandler "modelhub/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewCatalogHandler,
	commandHandler.NewQuotaHandler,
)

type Command struct {
	catalogCommandHandler *commandHandler.CatalogHandler
	quotaCommandHandler   *commandHandler.QuotaHandler
}

func NewCommand(
	catalogCommandHandler *commandHandler.CatalogHandler,
	quotaCommandHandler *commandHandler.QuotaHandler,
) *Command {
	return &Command{
		catalogCommandHandler: catalogCommandHandler,
		quotaCommandHandler:   quotaCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "model catalog commands",
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "fetch catalogs and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.catalogCommandHandler.Dump(cmd, args)
		},
	}
	dumpCmd.Flags().StringSliceP("provider", "p", nil, "only these providers, e.g. -p openai,anthropic")
	dumpCmd.Flags().Bool("refresh", false, "ignore TTL and refetch")
	dumpCmd.Flags().Duration("timeout", time.Minute, "overall timeout")

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "list providers and their effective TTL / timeout",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.catalogCommandHandler.Providers(cmd, args)
		},
	}

	quotaCmd := &cobra.Command{
		Use:   "quota <client-ip> <provider>",
		Short: "show or reset the force-refresh quota of a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.quotaCommandHandler.Quota(cmd, args)
		},
	}
	quotaCmd.Flags().Bool("reset", false, "delete the quota key before reading it")

	catalogCmd.AddCommand(dumpCmd, providersCmd, quotaCmd)
	rootCmd.AddCommand(catalogCmd)
}
