package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_dedup/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Apply pending database migrations",
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default())
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("%s Migrations applied\n", green("✓"))
		} else {
			fmt.Printf("%s No new migrations to apply\n", gray("○"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
