package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/MASTER-2222/linkedin/internal/bootstrap"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var storeFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := bootstrap.ParseStoreKind(storeFlag)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		deps, cleanup, err := bootstrap.NewDependencies(cmd.Context(), cfg, kind)
		if err != nil {
			return err
		}
		defer cleanup()

		app := bootstrap.NewAPI(deps)

		listenErr := make(chan error, 1)
		go func() {
			addr := ":" + cfg.Port
			logger.Info("Starting API server on %s", addr)
			listenErr <- app.Listen(addr)
		}()

		select {
		case err := <-listenErr:
			return err
		case <-cmd.Context().Done():
		}

		logger.Info("Shutting down API server (timeout: %v)...", shutdownTimeout)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("API shutdown timed out, forcing exit")
			}
			return err
		}
		logger.Info("API server shut down gracefully")
		return nil
	},
}
