package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) domain.IntegrityStore

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) domain.IntegrityStore {
			return NewMemoryStorage()
		},
		"jsonl": func(t *testing.T) domain.IntegrityStore {
			s, err := NewJsonlStorage(config.JsonlConfig{Path: t.TempDir()})
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) domain.IntegrityStore {
			s, err := NewSQLiteStorage(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "integrity.db")})
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestIntegrityStore_Contract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("missing record returns nil", func(t *testing.T) {
				s := factory(t)
				rec, err := s.GetRecord(ctx, domain.ScopeGlobal, domain.GlobalIdentifier)
				require.NoError(t, err)
				assert.Nil(t, rec)
			})

			t.Run("accept then get", func(t *testing.T) {
				s := factory(t)
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeWorkspace, "/src/app", "aaa"))

				rec, err := s.GetRecord(ctx, domain.ScopeWorkspace, "/src/app")
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.Equal(t, "aaa", rec.AcceptedHash)
				assert.Equal(t, domain.ScopeWorkspace, rec.Scope)
				assert.Equal(t, "/src/app", rec.Identifier)
				require.Len(t, rec.History, 1)
				assert.Equal(t, "aaa", rec.History[0].Hash)
			})

			t.Run("accept appends history", func(t *testing.T) {
				s := factory(t)
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, "h1"))
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, "h2"))

				rec, err := s.GetRecord(ctx, domain.ScopeGlobal, domain.GlobalIdentifier)
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.Equal(t, "h2", rec.AcceptedHash)
				require.Len(t, rec.History, 2)
				assert.Equal(t, "h1", rec.History[0].Hash)
				assert.Equal(t, "h2", rec.History[1].Hash)
			})

			t.Run("scopes are independent", func(t *testing.T) {
				s := factory(t)
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, "g"))
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeWorkspace, "/w", "w"))

				records, err := s.ListRecords(ctx)
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, "global:global", records[0].Key())
				assert.Equal(t, "workspace:/w", records[1].Key())
			})

			t.Run("trust flags", func(t *testing.T) {
				s := factory(t)
				_, found, err := s.GetTrust(ctx, "/w")
				require.NoError(t, err)
				assert.False(t, found)

				require.NoError(t, s.SetTrust(ctx, "/w", true))
				trusted, found, err := s.GetTrust(ctx, "/w")
				require.NoError(t, err)
				assert.True(t, found)
				assert.True(t, trusted)

				require.NoError(t, s.SetTrust(ctx, "/w", false))
				trusted, found, err = s.GetTrust(ctx, "/w")
				require.NoError(t, err)
				assert.True(t, found)
				assert.False(t, trusted)
			})

			t.Run("returned records are copies", func(t *testing.T) {
				s := factory(t)
				require.NoError(t, s.AcceptHash(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, "h1"))

				rec, err := s.GetRecord(ctx, domain.ScopeGlobal, domain.GlobalIdentifier)
				require.NoError(t, err)
				rec.History[0].Hash = "tampered"
				rec.AcceptedHash = "tampered"

				again, err := s.GetRecord(ctx, domain.ScopeGlobal, domain.GlobalIdentifier)
				require.NoError(t, err)
				assert.Equal(t, "h1", again.AcceptedHash)
				assert.Equal(t, "h1", again.History[0].Hash)
			})

			t.Run("concurrent accepts keep every history entry", func(t *testing.T) {
				s := factory(t)
				var wg sync.WaitGroup
				for i := 0; i < 10; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						assert.NoError(t, s.AcceptHash(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, "h"))
					}()
				}
				wg.Wait()

				rec, err := s.GetRecord(ctx, domain.ScopeGlobal, domain.GlobalIdentifier)
				require.NoError(t, err)
				assert.Len(t, rec.History, 10)
			})

			t.Run("health", func(t *testing.T) {
				s := factory(t)
				assert.NoError(t, s.Health(ctx))
			})
		})
	}
}

func TestJsonlStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewJsonlStorage(config.JsonlConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.AcceptHash(ctx, domain.ScopeWorkspace, "/w", "first"))
	require.NoError(t, s.AcceptHash(ctx, domain.ScopeWorkspace, "/w", "second"))
	require.NoError(t, s.SetTrust(ctx, "/w", true))
	require.NoError(t, s.Close())

	reopened, err := NewJsonlStorage(config.JsonlConfig{Path: dir})
	require.NoError(t, err)

	rec, err := reopened.GetRecord(ctx, domain.ScopeWorkspace, "/w")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "second", rec.AcceptedHash)
	assert.Len(t, rec.History, 2)

	trusted, found, err := reopened.GetTrust(ctx, "/w")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, trusted)
}

func TestJsonlStorage_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"v":1,"type":"accept","scope":"global","identifier":"global","hash":"ok","time":"2026-01-02T03:04:05Z"}
not json at all
{"v":1,"type":"trust","workspace":"/w","trusted":true,"time":"2026-01-02T03:04:05Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonlFileName), []byte(content), 0600))

	s, err := NewJsonlStorage(config.JsonlConfig{Path: dir})
	require.NoError(t, err)

	rec, err := s.GetRecord(context.Background(), domain.ScopeGlobal, domain.GlobalIdentifier)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ok", rec.AcceptedHash)

	trusted, found, err := s.GetTrust(context.Background(), "/w")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, trusted)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integrity.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.AcceptHash(ctx, domain.ScopeExtension, "lint-pack", "abc"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStorage(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	rec, err := reopened.GetRecord(ctx, domain.ScopeExtension, "lint-pack")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "abc", rec.AcceptedHash)
}

func TestNewStorage(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.StorageConfig
		wantType  any
		wantError bool
	}{
		{name: "memory", cfg: config.StorageConfig{Type: "memory"}, wantType: &MemoryStorage{}},
		{name: "jsonl", cfg: config.StorageConfig{Type: "jsonl", Jsonl: config.JsonlConfig{Path: t.TempDir()}}, wantType: &JsonlStorage{}},
		{name: "default is jsonl", cfg: config.StorageConfig{Jsonl: config.JsonlConfig{Path: t.TempDir()}}, wantType: &JsonlStorage{}},
		{name: "sqlite", cfg: config.StorageConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "x.db")}}, wantType: &SQLiteStorage{}},
		{name: "unknown", cfg: config.StorageConfig{Type: "cassandra"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStorage(tt.cfg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			assert.IsType(t, tt.wantType, s)
		})
	}
}
