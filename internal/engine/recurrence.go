package engine

import (
	"slices"
	"time"
)

// NextDue returns the next due date after due under rec. It never fails and,
// for every recurring policy, returns a date strictly after due: a weekday
// policy with no (or no valid) days falls back to one week.
func NextDue(due time.Time, rec Recurrence) time.Time {
	switch rec.Kind {
	case RepeatDaily:
		return due.AddDate(0, 0, 1)
	case RepeatWeekly:
		return due.AddDate(0, 0, 7)
	case RepeatWeekdays:
		if len(rec.Weekdays) == 0 {
			return due.AddDate(0, 0, 7)
		}
		for step := 1; step <= 7; step++ {
			cand := due.AddDate(0, 0, step)
			if slices.Contains(rec.Weekdays, Weekday(cand)) {
				return cand
			}
		}
		return due.AddDate(0, 0, 7)
	default:
		return due
	}
}
