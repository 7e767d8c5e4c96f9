package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// One full engine snapshot (JSON) per user; saves overwrite it.
		`CREATE TABLE IF NOT EXISTS snapshots (
			user_id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS reports (
			user_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (user_id, year)
		);`,
		// Audit trail of everything that moved XP or stats.
		`CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			at TEXT NOT NULL,
			kind TEXT NOT NULL,
			entity_id TEXT,
			title TEXT,
			xp_delta INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_user_at ON activity(user_id, at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE snapshots ADD COLUMN revision INTEGER NOT NULL DEFAULT 0;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
