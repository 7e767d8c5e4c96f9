package engine

import (
	"fmt"
	"time"
)

const (
	shortHorizonDays = 7
	midHorizonDays   = 92
)

// Classify maps the days left until due to a size class. It is total: past
// due dates are Short.
func Classify(due, today time.Time) SizeClass {
	left := DaysBetween(today, due)
	switch {
	case left <= shortHorizonDays:
		return SizeShort
	case left <= midHorizonDays:
		return SizeMid
	default:
		return SizeLong
	}
}

// Reward is the XP won (or lost) for a goal of this size.
func (c SizeClass) Reward() int {
	switch c {
	case SizeMid:
		return 25
	case SizeLong:
		return 70
	default:
		return 5
	}
}

// DaysLeftText renders how much time is left until a goal is due, e.g.
// "3 days left", "in 2 h", "overdue by 1 day".
func DaysLeftText(g Goal, now time.Time) string {
	if g.DueTime == "" {
		d := DaysBetween(Date(now), g.Due)
		switch {
		case d > 0:
			return fmt.Sprintf("%d %s left", d, plural(d, "day"))
		case d == 0:
			return "due today"
		default:
			return fmt.Sprintf("overdue by %d %s", -d, plural(-d, "day"))
		}
	}

	delta := DueInstant(g, now.Location()).Sub(now)
	overdue := delta <= 0
	if overdue {
		delta = -delta
	}
	secs := int(delta.Seconds())
	var span string
	switch {
	case secs >= 86400:
		span = fmt.Sprintf("%d %s", secs/86400, plural(secs/86400, "day"))
	case secs >= 3600:
		span = fmt.Sprintf("%d h", secs/3600)
	default:
		span = fmt.Sprintf("%d min", max(1, secs/60))
	}
	if overdue {
		return "overdue by " + span
	}
	return "in " + span
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
