package cmd

import (
	"log/slog"

	"github.com/newsdhq/newsd/internal/config"
	"github.com/newsdhq/newsd/internal/database"
	"github.com/newsdhq/newsd/internal/log"
	"github.com/spf13/cobra"
)

// migrateCmd applies the schema migrations manually.
func migrateCmd() *cobra.Command {
	var downAll bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, errConfig := config.Read(cfgFile)
			if errConfig != nil {
				return errConfig
			}

			action := database.MigrationAction(database.MigrateUp)
			if downAll {
				action = database.MigrateDn
			}

			db := database.New(conf.Database.DSN, false, conf.Database.LogQueries)
			if errMigrate := db.Migrate(action, conf.Database.DSN); errMigrate != nil {
				slog.Error("Could not migrate schema", log.ErrAttr(errMigrate))

				return errMigrate
			}

			slog.Info("Schema at latest version")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&downAll, "down", "d", false, "Fully reverts all migrations")

	return cmd
}
