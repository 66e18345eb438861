package migrations

// GetSQLiteMigrations returns all SQLite migrations in order
func GetSQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Initial schema - integrity records and history",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS integrity_records (
					record_key TEXT PRIMARY KEY,
					scope TEXT NOT NULL,
					identifier TEXT NOT NULL,
					accepted_hash TEXT NOT NULL,
					updated_at INTEGER NOT NULL
				);

				CREATE TABLE IF NOT EXISTS integrity_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					record_key TEXT NOT NULL,
					hash TEXT NOT NULL,
					accepted_at INTEGER NOT NULL,
					FOREIGN KEY (record_key) REFERENCES integrity_records(record_key) ON DELETE CASCADE
				);

				CREATE INDEX IF NOT EXISTS idx_integrity_history_record_key ON integrity_history(record_key, id);
			`,
			DownSQL: `
				DROP INDEX IF EXISTS idx_integrity_history_record_key;
				DROP TABLE IF EXISTS integrity_history;
				DROP TABLE IF EXISTS integrity_records;
			`,
		},
		{
			Version:     "002",
			Description: "Add workspace trust table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS workspace_trust (
					workspace TEXT PRIMARY KEY,
					trusted BOOLEAN NOT NULL,
					updated_at INTEGER NOT NULL
				);
			`,
			DownSQL: `
				DROP TABLE IF EXISTS workspace_trust;
			`,
		},
	}
}
