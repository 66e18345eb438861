package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	migrations "github.com/inference-gateway/toolgate/internal/infra/storage/migrations"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	_ "github.com/lib/pq"
)

// PostgresStorage implements IntegrityStore using PostgreSQL
type PostgresStorage struct {
	sqlStore
}

func postgresDSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
}

// NewPostgresStorage connects, verifies reachability and applies pending migrations
func NewPostgresStorage(cfg config.PostgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("PostgreSQL connection test failed: %w\n\n"+
			"Failed to connect to PostgreSQL. Verify:\n"+
			"  - PostgreSQL server is running at %s:%d\n"+
			"  - Database '%s' exists\n"+
			"  - User '%s' has proper permissions", err, cfg.Host, cfg.Port, cfg.Database, cfg.Username)
	}

	storage := &PostgresStorage{
		sqlStore: sqlStore{db: db, dialect: migrations.DialectPostgres, now: time.Now},
	}

	if err := storage.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Connected to PostgreSQL integrity store", "host", cfg.Host, "database", cfg.Database)
	return storage, nil
}

// DB exposes the underlying connection for the migrate command
func (s *PostgresStorage) DB() *sql.DB {
	return s.db
}
