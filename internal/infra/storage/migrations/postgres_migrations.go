package migrations

// GetPostgresMigrations returns all PostgreSQL migrations in order
func GetPostgresMigrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Initial schema - integrity records and history",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS integrity_records (
					record_key VARCHAR(512) PRIMARY KEY,
					scope VARCHAR(32) NOT NULL,
					identifier TEXT NOT NULL,
					accepted_hash VARCHAR(128) NOT NULL,
					updated_at BIGINT NOT NULL
				);

				CREATE TABLE IF NOT EXISTS integrity_history (
					id BIGSERIAL PRIMARY KEY,
					record_key VARCHAR(512) NOT NULL,
					hash VARCHAR(128) NOT NULL,
					accepted_at BIGINT NOT NULL,
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
					updated_at BIGINT NOT NULL
				);
			`,
			DownSQL: `
				DROP TABLE IF EXISTS workspace_trust;
			`,
		},
	}
}
