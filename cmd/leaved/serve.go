package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/leave_management/internal/app"
	"github.com/Skotchmaster/leave_management/internal/config"
	"github.com/Skotchmaster/leave_management/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.Setup(cfg.LogLevel, cfg.ServiceName)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			a, err := app.New(initCtx, cfg, logger)
			cancel()
			if err != nil {
				logger.Error("init failed", "error", err)
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					logger.Error("close failed", "error", err)
				}
			}()

			e := a.Echo()
			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server starting", "addr", cfg.Addr(), "db_driver", cfg.DBDriver)
				if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logger.Error("http server failed", "error", err)
					return err
				}
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				logger.Error("http shutdown", "error", err)
			}
			return nil
		},
	}
}
