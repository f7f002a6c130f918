package command

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/cookbook/internal/app"
	"github.com/stolasapp/cookbook/internal/cache"
	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/observability"
	"github.com/stolasapp/cookbook/internal/server"
	"github.com/stolasapp/cookbook/internal/storage"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the cookbook API",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, store storage.Store) error {
			metrics := observability.NewMetrics()
			appServer, err := app.New(cfg, logger, store, listCache(cfg), metrics)
			if err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			if cfg.MetricsAddress != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				if _, listenErr := server.Start(ctx, grp, logger, "metrics", cfg.MetricsAddress, mux); listenErr != nil {
					grp.Go(func() error { return listenErr })
				}
			}
			if _, listenErr := server.Start(ctx, grp, logger, "app", cfg.Address, appServer); listenErr != nil {
				grp.Go(func() error { return listenErr })
			}
			return grp.Wait()
		}),
	}
}

// listCache returns the recipe list cache, a no-op one when the TTL is zero.
func listCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.TTL == 0 {
		return cache.Nop{}
	}
	return cache.NewLRU(cfg.Cache.MaxBytes)
}
