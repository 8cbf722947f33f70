package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema idempotently. One row per username; the
// habits and completed columns hold the JSON shapes from the persistence
// record contract.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			habits TEXT NOT NULL DEFAULT '[]',
			completed TEXT NOT NULL DEFAULT '[]',
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			streak INTEGER NOT NULL DEFAULT 0,
			last_completed_date TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_users_last_completed_date ON users(last_completed_date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
