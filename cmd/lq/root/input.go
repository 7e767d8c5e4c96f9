package root

import (
	"strconv"
	"strings"
	"time"

	"lifequest/internal/engine"
)

// parseDay accepts YYYY-MM-DD, today, tomorrow, yesterday and +N / -N day
// offsets relative to today.
func parseDay(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return time.Time{}, engine.InvalidInputError{Field: "date", Reason: "empty"}
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if s[0] == '+' || s[0] == '-' {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, engine.InvalidInputError{Field: "date", Reason: "bad day offset " + strconv.Quote(s)}
		}
		return today.AddDate(0, 0, n), nil
	}
	d, err := engine.ParseDate(s)
	if err != nil {
		return time.Time{}, engine.InvalidInputError{Field: "date", Reason: "want YYYY-MM-DD, today, tomorrow or +N"}
	}
	return d, nil
}
