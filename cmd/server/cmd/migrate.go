package cmd

import (
	"fmt"

	"github.com/eventlane/server/internal/config"
	"github.com/eventlane/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	migrateStats bool
	migrateSteps int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply or roll back schema migrations for the main database or,
with --stats, for the statistics database.

Examples:
  # Apply all pending migrations to the main database
  server migrate up

  # Roll back the most recent migration
  server migrate down --steps 1

  # Apply statistics service migrations
  server migrate up --stats`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, path, err := migrateTarget()
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(url, path); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, path, err := migrateTarget()
		if err != nil {
			return err
		}
		if err := postgres.MigrateDown(url, path, migrateSteps); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
		return nil
	},
}

func migrateTarget() (url string, path string, err error) {
	if migrateStats {
		cfg, err := config.LoadStatsService()
		if err != nil {
			return "", "", fmt.Errorf("config error: %w", err)
		}
		return cfg.Database.URL, postgres.DefaultStatsMigrationsPath, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", "", fmt.Errorf("config error: %w", err)
	}
	return cfg.Database.URL, postgres.DefaultMigrationsPath, nil
}

func init() {
	migrateCmd.PersistentFlags().BoolVar(&migrateStats, "stats", false, "target the statistics database")
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
