package command

import (
	"bytes"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/seed"
	"github.com/stolasapp/cookbook/internal/storage"
)

func initDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema",
		Long:  "Creates the database file if missing and applies any pending migrations.",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, _ storage.Store) error {
			logger.InfoContext(cmd.Context(), "database initialized", slog.String("path", cfg.DBFilepath))
			return nil
		}),
	}
}

func dropDBCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop-db",
		Short: "Drop the database schema",
		Long: "Removes every table and all data, including the admin key. " +
			"This operation is permanent and irreversible.",
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, store storage.Store) error {
			logger = logger.With(slog.String("path", cfg.DBFilepath))
			if !yes {
				resp, err := prompt("Are you sure you want to drop the database? [y|N] ", false)
				if !bytes.Equal(resp, []byte{'y'}) || err != nil {
					logger.InfoContext(cmd.Context(), "aborted database drop")
					return err
				}
			}
			if err := store.Drop(cmd.Context()); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "database dropped")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func genTestDataCommand() *cobra.Command {
	var (
		fake     int
		fakeSeed uint64
	)
	cmd := &cobra.Command{
		Use:   "gen-test-data",
		Short: "Populate the database with test data",
		Long: "Inserts two users, four ingredients and four recipes with their ingredient\n" +
			"quantities and reviews. With --fake, additional generated recipes are added.",
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ *config.Config, logger *slog.Logger, store storage.Store) error {
			if err := seed.Load(cmd.Context(), store); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "test data generated")
			if fake <= 0 {
				return nil
			}
			if !cmd.Flags().Changed("seed") {
				fakeSeed = seed.Seed()
			}
			if err := seed.Fake(cmd.Context(), store, fakeSeed, fake); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "fake recipes generated",
				slog.Int("count", fake),
				slog.Uint64("seed", fakeSeed),
			)
			return nil
		}),
	}
	cmd.Flags().IntVar(&fake, "fake", 0, "number of generated recipes to add")
	cmd.Flags().Uint64Var(&fakeSeed, "seed", 0, "seed of the generated recipes (default $COOKBOOK_SEED or random)")
	return cmd
}

func clearTestDataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-test-data",
		Short: "Remove all users, ingredients, recipes and reviews",
		Long:  "Empties every resource table. The admin key is kept.",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ *config.Config, logger *slog.Logger, store storage.Store) error {
			if err := store.ClearEntities(cmd.Context()); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "test data cleared")
			return nil
		}),
	}
}
