package storage

import (
	"fmt"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// NewStorage creates a new integrity store based on the provided configuration
func NewStorage(cfg config.StorageConfig) (domain.IntegrityStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStorage(), nil
	case "jsonl", "":
		return NewJsonlStorage(cfg.Jsonl)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLite)
	case "postgres":
		return NewPostgresStorage(cfg.Postgres)
	case "redis":
		return NewRedisStorage(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// applyAccept returns a copy of rec with hash recorded as the accepted hash
func applyAccept(rec *domain.IntegrityRecord, scope domain.PolicyScope, identifier, hash string, now time.Time) domain.IntegrityRecord {
	next := domain.IntegrityRecord{
		Scope:      scope,
		Identifier: identifier,
	}
	if rec != nil {
		next.History = append(next.History, rec.History...)
	}
	next.AcceptedHash = hash
	next.UpdatedAt = now
	next.History = append(next.History, domain.AcceptedHash{Hash: hash, AcceptedAt: now})
	return next
}

func copyRecord(rec domain.IntegrityRecord) *domain.IntegrityRecord {
	out := rec
	out.History = append([]domain.AcceptedHash(nil), rec.History...)
	return &out
}
