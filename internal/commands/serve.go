package commands

import (
	"os/signal"
	"syscall"

	"github.com/Dhoini/Admin-panel/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Connect the configured gateway, report store and event publisher, then serve until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Infow("Admin panel starting up", "driver", cfg.Gateway.Driver, "env", cfg.App.Env)

		a, err := app.NewApp(ctx, cfg, log)
		if err != nil {
			log.Errorw("Failed to initialize application", "error", err)
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Warnw("Failed to release resources", "error", err)
			}
		}()

		return a.Run(ctx)
	},
}
