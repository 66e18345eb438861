package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Dialect selects the SQL flavour used by the runner
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Migration is one versioned schema change of the integrity store
type Migration struct {
	// Version orders migrations lexically ("001", "002", ...)
	Version     string
	Description string
	UpSQL       string
	// DownSQL is used by Rollback; optional
	DownSQL string
}

// MigrationStatus reports whether a known migration has been applied
type MigrationStatus struct {
	Version     string
	Description string
	Applied     bool
}

// MigrationRunner applies migrations and tracks them in schema_migrations
type MigrationRunner struct {
	db      *sql.DB
	dialect Dialect
}

// NewMigrationRunner creates a new migration runner
func NewMigrationRunner(db *sql.DB, dialect Dialect) *MigrationRunner {
	return &MigrationRunner{
		db:      db,
		dialect: dialect,
	}
}

// ForDialect returns the built-in migrations for a dialect
func ForDialect(dialect Dialect) ([]Migration, error) {
	switch dialect {
	case DialectSQLite:
		return GetSQLiteMigrations(), nil
	case DialectPostgres:
		return GetPostgresMigrations(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// EnsureMigrationTable creates schema_migrations if missing
func (r *MigrationRunner) EnsureMigrationTable(ctx context.Context) error {
	var createSQL string

	switch r.dialect {
	case DialectSQLite:
		createSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		);
		`
	case DialectPostgres:
		createSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
		`
	default:
		return fmt.Errorf("unsupported dialect: %s", r.dialect)
	}

	if _, err := r.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns the set of applied versions
func (r *MigrationRunner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func (r *MigrationRunner) bind(query string) string {
	return Rebind(r.dialect, query)
}

// ApplyMigration runs one migration and records it in the same transaction
func (r *MigrationRunner) ApplyMigration(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
	}

	record := r.bind("INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)")
	if _, err := tx.ExecContext(ctx, record, migration.Version, migration.Description, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Version, err)
	}
	return nil
}

// ApplyMigrations applies every pending migration in version order
// and returns how many were applied.
func (r *MigrationRunner) ApplyMigrations(ctx context.Context, migrations []Migration) (int, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	ordered := sortedCopy(migrations)

	count := 0
	for _, migration := range ordered {
		if applied[migration.Version] {
			continue
		}
		if err := r.ApplyMigration(ctx, migration); err != nil {
			return count, fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}
		count++
	}

	return count, nil
}

// Rollback reverts the most recently applied migration that has DownSQL
func (r *MigrationRunner) Rollback(ctx context.Context, migrations []Migration) (string, error) {
	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return "", err
	}

	ordered := sortedCopy(migrations)
	for i := len(ordered) - 1; i >= 0; i-- {
		m := ordered[i]
		if !applied[m.Version] {
			continue
		}
		if m.DownSQL == "" {
			return "", fmt.Errorf("migration %s has no down migration", m.Version)
		}

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return "", fmt.Errorf("failed to begin transaction: %w", err)
		}
		if _, err := tx.ExecContext(ctx, m.DownSQL); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("failed to roll back migration %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, r.bind("DELETE FROM schema_migrations WHERE version = ?"), m.Version); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("failed to unrecord migration %s: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit rollback of %s: %w", m.Version, err)
		}
		return m.Version, nil
	}

	return "", nil
}

// GetMigrationStatus lists availableMigrations with their applied flag
func (r *MigrationRunner) GetMigrationStatus(ctx context.Context, availableMigrations []Migration) ([]MigrationStatus, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(availableMigrations))
	for _, m := range sortedCopy(availableMigrations) {
		status = append(status, MigrationStatus{
			Version:     m.Version,
			Description: m.Description,
			Applied:     applied[m.Version],
		})
	}
	return status, nil
}

func sortedCopy(migrations []Migration) []Migration {
	out := append([]Migration(nil), migrations...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// rebindPostgres turns ? placeholders into $n
func rebindPostgres(query string) string {
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// Rebind converts a ?-placeholder query for the given dialect
func Rebind(dialect Dialect, query string) string {
	if dialect == DialectPostgres {
		return rebindPostgres(query)
	}
	return query
}
