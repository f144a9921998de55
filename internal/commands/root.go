// Package commands holds the adminpanel command line.
package commands

import (
	"context"

	"github.com/Dhoini/Admin-panel/internal/config"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
	log        *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adminpanel",
	Short: "Membership club admin panel",
	Long: `adminpanel serves the staff dashboard, user and admin pages and CSV
reports on top of a hosted or self-hosted table store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		log = newLogger(cfg)
		return nil
	},
}

func newLogger(cfg *config.Config) *logger.Logger {
	level := logger.ParseLevel(cfg.Log.Level)
	if cfg.IsProduction() {
		return logger.NewProduction(level)
	}
	return logger.New(level)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default ./config.yml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
