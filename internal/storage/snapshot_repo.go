package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotRepo keeps one serialized engine state per user.
type SnapshotRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, now: time.Now}
}

func (r *SnapshotRepo) Get(ctx context.Context, userID string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, data, revision, updated_at FROM snapshots WHERE user_id = ?`, userID)

	var (
		s       Snapshot
		data    string
		updated string
	)
	if err := row.Scan(&s.UserID, &data, &s.Revision, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	s.Data = []byte(data)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}

func (r *SnapshotRepo) LoadSnapshot(ctx context.Context, userID string) ([]byte, bool, error) {
	s, err := r.Get(ctx, userID)
	if err != nil || s == nil {
		return nil, false, err
	}
	return s.Data, true, nil
}

func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, userID string, data []byte) error {
	return upsertSnapshot(ctx, r.db, userID, data, r.now())
}

// SaveRollover writes the closing year's report and the reset snapshot in one
// transaction.
func (r *SnapshotRepo) SaveRollover(ctx context.Context, userID string, reset []byte, year int, report []byte) error {
	now := r.now()
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertReport(ctx, tx, userID, year, report, now); err != nil {
			return err
		}
		return upsertSnapshot(ctx, tx, userID, reset, now)
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSnapshot(ctx context.Context, db execer, userID string, data []byte, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO snapshots (user_id, data, updated_at, revision) VALUES (?, ?, ?, 1)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			revision = snapshots.revision + 1
	`, userID, string(data), formatTime(now))
	if err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	return nil
}
