package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Food-Tracker/cmd/config"
	migration "Food-Tracker/cmd/database/migrate"
	"Food-Tracker/internal/utils"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			if migrate {
				if err := migration.Migrate(db, log); err != nil {
					return err
				}
			}

			app, cleanup, err := config.NewApp(ctx, db, log)
			if err != nil {
				cleanup()
				return err
			}
			defer cleanup()

			port := utils.GetConfig("APP_PORT")
			if port == "" {
				port = "8080"
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", "port", port)
				errCh <- app.Listen(":" + port)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run database migrations before serving")

	return cmd
}
