package storage

import "time"

// timeLayout is how timestamps are written to TEXT columns. Fixed width, so
// the text sorts in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Snapshot struct {
	UserID    string
	Data      []byte
	Revision  int
	UpdatedAt time.Time
}

type Report struct {
	UserID    string
	Year      int
	Data      []byte
	CreatedAt time.Time
}

// ReportInfo describes a stored report without loading its bytes.
type ReportInfo struct {
	Year      int
	Size      int
	CreatedAt time.Time
}

type ActivityEntry struct {
	ID       int64
	UserID   string
	At       time.Time
	Kind     string
	EntityID string
	Title    string
	XPDelta  int
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
