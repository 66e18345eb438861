package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	migrations "github.com/inference-gateway/toolgate/internal/infra/storage/migrations"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements IntegrityStore using SQLite
type SQLiteStorage struct {
	sqlStore
	path string
}

// NewSQLiteStorage opens the database and applies pending migrations
func NewSQLiteStorage(cfg config.SQLiteConfig) (*SQLiteStorage, error) {
	path := config.ExpandPath(cfg.Path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &SQLiteStorage{
		sqlStore: sqlStore{db: db, dialect: migrations.DialectSQLite, now: time.Now},
		path:     path,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storage.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Opened SQLite integrity store", "path", path)
	return storage, nil
}

// DB exposes the underlying connection for the migrate command
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}
