package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for every persisted
// date and every ledger key.
const DateLayout = "2006-01-02"

// Date truncates t to its calendar date in t's own location and returns it
// as midnight UTC, so day arithmetic never crosses a DST edge.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

// Weekday returns the Monday-based weekday index (0 = Monday .. 6 = Sunday).
func Weekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// ParseClock validates an "HH:MM" due time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return t.Hour(), t.Minute(), nil
}

// DateSet is a set of ISO dates.
type DateSet map[string]struct{}

func NewDateSet(dates ...string) DateSet {
	s := DateSet{}
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Has(d time.Time) bool {
	_, ok := s[FormatDate(d)]
	return ok
}

func (s DateSet) Add(d time.Time) {
	s[FormatDate(d)] = struct{}{}
}

func (s DateSet) Remove(d time.Time) {
	delete(s, FormatDate(d))
}

// Sorted returns the members in ascending order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}
