package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/ledger_dedup/internal/core/services"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/platform/config"
	"github.com/SscSPs/ledger_dedup/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_dedup/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// noStoreAnnotation marks commands that must not open the connection pool.
const noStoreAnnotation = "no-store"

var (
	cfg        *config.Config
	svc        *portssvc.ServiceContainer
	pool       *pgxpool.Pool
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dedupctl",
	Short: "Find and resolve transactions recorded twice in the ledger",
	Long: `dedupctl detects candidate duplicate transactions, lists them for review
and records decisions. Confirmed duplicates are excluded from every default
aggregate until restored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Annotations[noStoreAnnotation] == "true" {
			return nil
		}

		pool, err = database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		svc = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pool != nil {
			pool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
