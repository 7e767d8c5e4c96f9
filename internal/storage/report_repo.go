package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReportRepo reads the yearly reports written by SnapshotRepo.SaveRollover.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Get(ctx context.Context, userID string, year int) (*Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, year, data, created_at FROM reports WHERE user_id = ? AND year = ?`, userID, year)
	var (
		rep     Report
		created string
	)
	if err := row.Scan(&rep.UserID, &rep.Year, &rep.Data, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("report get: %w", err)
	}
	rep.CreatedAt = parseTime(created)
	return &rep, nil
}

func (r *ReportRepo) List(ctx context.Context, userID string) ([]ReportInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT year, length(data), created_at FROM reports WHERE user_id = ? ORDER BY year DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("report list: %w", err)
	}
	defer rows.Close()

	var out []ReportInfo
	for rows.Next() {
		var (
			info    ReportInfo
			created string
		)
		if err := rows.Scan(&info.Year, &info.Size, &created); err != nil {
			return nil, fmt.Errorf("report scan: %w", err)
		}
		info.CreatedAt = parseTime(created)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report rows: %w", err)
	}
	return out, nil
}

// insertReport replaces any earlier report for the same year.
func insertReport(ctx context.Context, db execer, userID string, year int, data []byte, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO reports (user_id, year, data, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, year) DO UPDATE SET data = excluded.data, created_at = excluded.created_at
	`, userID, year, data, formatTime(now))
	if err != nil {
		return fmt.Errorf("report insert: %w", err)
	}
	return nil
}
