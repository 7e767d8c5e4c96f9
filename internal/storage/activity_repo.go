package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifequest/internal/engine"
)

// ActivityRepo is the append-only ledger of XP-affecting events.
type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, userID string, entries []engine.Activity) error {
	if len(entries) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO activity (user_id, at, kind, entity_id, title, xp_delta)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("activity prepare: %w", err)
		}
		defer stmt.Close()

		for _, a := range entries {
			if _, err := stmt.ExecContext(ctx, userID, formatTime(a.At), string(a.Kind), a.EntityID, a.Title, a.XPDelta); err != nil {
				return fmt.Errorf("activity insert: %w", err)
			}
		}
		return nil
	})
}

// ListRecent returns up to limit entries, newest first. An empty kind
// matches every kind.
func (r *ActivityRepo) ListRecent(ctx context.Context, userID, kind string, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, at, kind, COALESCE(entity_id, ''), COALESCE(title, ''), xp_delta
		FROM activity
		WHERE user_id = ? AND (? = '' OR kind = ?)
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, userID, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var (
			a  ActivityEntry
			at string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &at, &a.Kind, &a.EntityID, &a.Title, &a.XPDelta); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		a.At = parseTime(at)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}

// CountByKind tallies a user's entries per kind.
func (r *ActivityRepo) CountByKind(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM activity WHERE user_id = ? GROUP BY kind`, userID)
	if err != nil {
		return nil, fmt.Errorf("activity count: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("activity count scan: %w", err)
		}
		out[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity count rows: %w", err)
	}
	return out, nil
}
