package db

import "database/sql"

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			uid INTEGER PRIMARY KEY,
			balance TEXT NOT NULL DEFAULT '0',
			total_deposited TEXT NOT NULL DEFAULT '0',
			total_withdrawn TEXT NOT NULL DEFAULT '0'
		);`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			uid INTEGER NOT NULL,
			amount TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_uid ON transactions(uid);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);`,

		`CREATE TABLE IF NOT EXISTS settlements (
			ref TEXT PRIMARY KEY,
			idem_key TEXT UNIQUE,
			uid INTEGER NOT NULL,
			game TEXT NOT NULL,
			bet TEXT NOT NULL,
			payout TEXT NOT NULL,
			new_balance TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid INTEGER,
			action TEXT,
			metadata TEXT,
			created_at INTEGER
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
