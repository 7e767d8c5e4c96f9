package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStat parses user input to a Stat. Short forms and the first letters
// of a stat are accepted; empty input yields def.
func ParseStat(input string, def Stat) (Stat, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return def, nil
	case "health", "hp", "hea":
		return StatHealth, nil
	case "intellect", "int", "mind":
		return StatIntellect, nil
	case "joy", "fun":
		return StatJoy, nil
	case "relationships", "rel", "social":
		return StatRelationships, nil
	case "success", "suc", "career":
		return StatSuccess, nil
	case "discipline", "dis":
		return StatDiscipline, nil
	default:
		return "", fmt.Errorf("%w: %q (one of health, intellect, joy, relationships, success, discipline)", ErrUnknownStat, input)
	}
}

var weekdayNames = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// WeekdayNames are the short labels for Monday-based weekday indexes.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseWeekdays parses a comma separated weekday list such as
// "mon,wed,fri", "0,2,4", "weekdays", "weekend" or "all".
func ParseWeekdays(input string) ([]int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return nil, InvalidInputError{Field: "days", Reason: "empty weekday list"}
	case "all", "daily", "every":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekdays", "workdays":
		return []int{0, 1, 2, 3, 4}, nil
	case "weekend":
		return []int{5, 6}, nil
	}

	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, ok := weekdayNames[part]; ok {
			out = append(out, d)
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, InvalidInputError{Field: "days", Reason: fmt.Sprintf("unknown weekday %q", part)}
		}
		out = append(out, d)
	}
	return validateWeekdays("days", out)
}

// ParseRecurrence parses a repeat policy: none, daily, weekly or a weekday
// list (which yields RepeatWeekdays).
func ParseRecurrence(input string) (Recurrence, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "none", "once":
		return Recurrence{Kind: RepeatNone}, nil
	case "daily":
		return Recurrence{Kind: RepeatDaily}, nil
	case "weekly":
		return Recurrence{Kind: RepeatWeekly}, nil
	}
	days, err := ParseWeekdays(s)
	if err != nil {
		return Recurrence{}, InvalidInputError{Field: "repeat", Reason: fmt.Sprintf("want none, daily, weekly or a weekday list, got %q", input)}
	}
	return Recurrence{Kind: RepeatWeekdays, Weekdays: days}, nil
}

// FormatWeekdays renders weekday indexes as "Mon,Wed".
func FormatWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < 7 {
			names = append(names, WeekdayNames[d])
		}
	}
	return strings.Join(names, ",")
}

func (r Recurrence) String() string {
	switch r.Kind {
	case RepeatDaily, RepeatWeekly:
		return string(r.Kind)
	case RepeatWeekdays:
		return FormatWeekdays(r.Weekdays)
	default:
		return "once"
	}
}
