// Package server runs the HTTP listeners of the cookbook service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 1 * time.Second
	ReadTimeout       = 5 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Start listens on addr and serves handler in grp until ctx is canceled, at
// which point the server is gracefully shut down. name labels the server in
// logs. The bound address is returned, which differs from addr when it names
// port 0.
func Start(
	ctx context.Context,
	grp *errgroup.Group,
	logger *slog.Logger,
	name string,
	addr string,
	handler http.Handler,
) (net.Addr, error) {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	logger.InfoContext(ctx,
		"starting "+name+" server...",
		slog.String("address", listener.Addr().String()),
	)

	grp.Go(func() error {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "stopping "+name+" server...")
		return srv.Shutdown(shutdownCtx)
	})

	return listener.Addr(), nil
}
