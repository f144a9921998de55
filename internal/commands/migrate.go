package commands

import (
	"errors"

	"github.com/Dhoini/Admin-panel/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the panel tables in PostgreSQL",
	Long:  `Create users, subscriptions, admins and sessions in database.dsn in one transaction. Existing tables are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.DSN == "" {
			return errors.New("database.dsn is required for migrate")
		}

		client, err := db.NewDBClient(cmd.Context(), cfg.Database.DSN, log)
		if err != nil {
			return err
		}
		defer client.Close()

		return client.Migrate(cmd.Context())
	},
}
