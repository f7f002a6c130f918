package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/sec"
	"github.com/stolasapp/cookbook/internal/storage"
)

func initAPIKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-apikey",
		Short: "Generate the admin API key",
		Long: "Generates a new admin API key, replacing any previous one, and prints it.\n" +
			"Only a digest of the key is stored: it cannot be shown again.",
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ *config.Config, logger *slog.Logger, store storage.Store) error {
			key := sec.GenerateKey()
			hash, err := sec.HashKey(key)
			if err != nil {
				return err
			}
			if err = store.ReplaceAdminKey(cmd.Context(), hash); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "admin key replaced")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		}),
	}
}
