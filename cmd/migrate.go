package cmd

import (
	"context"
	"fmt"
	"os"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	storage "github.com/inference-gateway/toolgate/internal/infra/storage"
	migrations "github.com/inference-gateway/toolgate/internal/infra/storage/migrations"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run integrity store migrations",
	Long: `Run database migrations for the integrity store.

SQLite and PostgreSQL stores apply pending migrations when they are opened;
this command opens the configured store and reports the result. JSONL, Redis
and memory stores do not use a relational schema and need no migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetBool("status")

		store, err := storage.NewStorage(appConfig.Storage)
		if err != nil {
			return fmt.Errorf("failed to open integrity store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close storage: %v\n", err)
			}
		}()

		if status {
			return showMigrationStatus(cmd.Context(), store)
		}
		return runMigrations(store)
	},
}

func init() {
	migrateCmd.Flags().Bool("status", false, "Show migration status without applying migrations")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(store domain.IntegrityStore) error {
	switch store.(type) {
	case *storage.SQLiteStorage:
		fmt.Printf("%s SQLite integrity store migrations are up to date\n", ui.CheckMark())
		return nil
	case *storage.PostgresStorage:
		fmt.Printf("%s PostgreSQL integrity store migrations are up to date\n", ui.CheckMark())
		return nil
	case *storage.JsonlStorage:
		fmt.Println("JSONL storage does not require migrations")
		return nil
	case *storage.MemoryStorage:
		fmt.Println("Memory storage does not require migrations")
		return nil
	case *storage.RedisStorage:
		fmt.Println("Redis storage does not require migrations")
		return nil
	default:
		return fmt.Errorf("unsupported storage backend: %T", store)
	}
}

func showMigrationStatus(ctx context.Context, store domain.IntegrityStore) error {
	switch s := store.(type) {
	case *storage.SQLiteStorage:
		return printMigrationStatus(ctx, "SQLite", migrations.NewMigrationRunner(s.DB(), migrations.DialectSQLite), migrations.GetSQLiteMigrations())
	case *storage.PostgresStorage:
		return printMigrationStatus(ctx, "PostgreSQL", migrations.NewMigrationRunner(s.DB(), migrations.DialectPostgres), migrations.GetPostgresMigrations())
	default:
		return runMigrations(store)
	}
}

func printMigrationStatus(ctx context.Context, name string, runner *migrations.MigrationRunner, all []migrations.Migration) error {
	if ctx == nil {
		ctx = context.Background()
	}

	status, err := runner.GetMigrationStatus(ctx, all)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("%s Migration Status:\n\n", name)
	for _, s := range status {
		icon, text := ui.CrossMark(), "Pending"
		if s.Applied {
			icon, text = ui.CheckMark(), "Applied"
		}
		fmt.Printf("  %s Version %s: %s (%s)\n", icon, s.Version, s.Description, text)
	}
	return nil
}
