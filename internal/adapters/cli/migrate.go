package cli

import (
	"github.com/spf13/cobra"

	"gloss/internal/config"
	"gloss/internal/infrastructure/database"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var down bool
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			dir := database.Up
			if down {
				dir = database.Down
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, dir)
		},
	}
	c.Flags().BoolVar(&down, "down", false, "Roll back the latest migration instead")
	return c
}
