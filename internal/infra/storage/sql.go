package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	migrations "github.com/inference-gateway/toolgate/internal/infra/storage/migrations"
)

// sqlStore holds the IntegrityStore queries shared by SQLite and PostgreSQL.
// Queries use ? placeholders and are rebound per dialect.
type sqlStore struct {
	db      *sql.DB
	dialect migrations.Dialect
	now     func() time.Time
}

func (s *sqlStore) q(query string) string {
	return migrations.Rebind(s.dialect, query)
}

func (s *sqlStore) migrate(ctx context.Context) error {
	available, err := migrations.ForDialect(s.dialect)
	if err != nil {
		return err
	}
	runner := migrations.NewMigrationRunner(s.db, s.dialect)
	if _, err := runner.ApplyMigrations(ctx, available); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// GetRecord returns the record for scope+identifier
func (s *sqlStore) GetRecord(ctx context.Context, scope domain.PolicyScope, identifier string) (*domain.IntegrityRecord, error) {
	key := domain.IntegrityKey(scope, identifier)

	var (
		rec       domain.IntegrityRecord
		scopeStr  string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		s.q("SELECT scope, identifier, accepted_hash, updated_at FROM integrity_records WHERE record_key = ?"),
		key,
	).Scan(&scopeStr, &rec.Identifier, &rec.AcceptedHash, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query integrity record: %w", err)
	}
	rec.Scope = domain.PolicyScope(scopeStr)
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()

	history, err := s.history(ctx, key)
	if err != nil {
		return nil, err
	}
	rec.History = history
	return &rec, nil
}

func (s *sqlStore) history(ctx context.Context, key string) ([]domain.AcceptedHash, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT hash, accepted_at FROM integrity_history WHERE record_key = ? ORDER BY id ASC"),
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query integrity history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []domain.AcceptedHash
	for rows.Next() {
		var (
			h  domain.AcceptedHash
			at int64
		)
		if err := rows.Scan(&h.Hash, &at); err != nil {
			return nil, fmt.Errorf("failed to scan integrity history: %w", err)
		}
		h.AcceptedAt = time.Unix(0, at).UTC()
		history = append(history, h)
	}
	return history, rows.Err()
}

// AcceptHash upserts the record and appends to its history in one transaction
func (s *sqlStore) AcceptHash(ctx context.Context, scope domain.PolicyScope, identifier, hash string) error {
	key := domain.IntegrityKey(scope, identifier)
	now := s.now().UTC().UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO integrity_records (record_key, scope, identifier, accepted_hash, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (record_key) DO UPDATE SET
			accepted_hash = excluded.accepted_hash,
			updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, s.q(upsert), key, string(scope), identifier, hash, now); err != nil {
		return fmt.Errorf("failed to upsert integrity record: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		s.q("INSERT INTO integrity_history (record_key, hash, accepted_at) VALUES (?, ?, ?)"),
		key, hash, now,
	); err != nil {
		return fmt.Errorf("failed to append integrity history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accepted hash: %w", err)
	}
	return nil
}

// ListRecords returns all records ordered by key
func (s *sqlStore) ListRecords(ctx context.Context) ([]domain.IntegrityRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT record_key, scope, identifier, accepted_hash, updated_at FROM integrity_records ORDER BY record_key ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrity records: %w", err)
	}

	var (
		records []domain.IntegrityRecord
		keys    []string
	)
	for rows.Next() {
		var (
			rec       domain.IntegrityRecord
			key       string
			scopeStr  string
			updatedAt int64
		)
		if err := rows.Scan(&key, &scopeStr, &rec.Identifier, &rec.AcceptedHash, &updatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan integrity record: %w", err)
		}
		rec.Scope = domain.PolicyScope(scopeStr)
		rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
		records = append(records, rec)
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range records {
		history, err := s.history(ctx, keys[i])
		if err != nil {
			return nil, err
		}
		records[i].History = history
	}
	return records, nil
}

// GetTrust returns the stored trust flag for a workspace
func (s *sqlStore) GetTrust(ctx context.Context, workspace string) (bool, bool, error) {
	var trusted bool
	err := s.db.QueryRowContext(ctx,
		s.q("SELECT trusted FROM workspace_trust WHERE workspace = ?"),
		workspace,
	).Scan(&trusted)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to query workspace trust: %w", err)
	}
	return trusted, true, nil
}

// SetTrust stores the trust flag for a workspace
func (s *sqlStore) SetTrust(ctx context.Context, workspace string, trusted bool) error {
	upsert := `
		INSERT INTO workspace_trust (workspace, trusted, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (workspace) DO UPDATE SET
			trusted = excluded.trusted,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, s.q(upsert), workspace, trusted, s.now().UTC().UnixNano()); err != nil {
		return fmt.Errorf("failed to store workspace trust: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Health pings the database
func (s *sqlStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
