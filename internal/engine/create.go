package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is assigned to goals created without one.
const DefaultCategory = "other"

// Categories are the suggested goal categories; any non-empty label is
// accepted.
var Categories = []string{"work", "personal", "family", "projects", DefaultCategory}

type CreateGoalInput struct {
	Title      string
	Due        time.Time
	DueTime    string
	Category   string
	Stat       Stat
	Recurrence Recurrence
}

type CreateHabitInput struct {
	Title    string
	Weekdays []int
	Stat     Stat
}

type CreateBigGoalInput struct {
	Title string
	Due   time.Time
	Note  string
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func validateWeekdays(field string, days []int) ([]int, error) {
	seen := [7]bool{}
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, InvalidInputError{Field: field, Reason: fmt.Sprintf("weekday %d out of range 0..6", d)}
		}
		seen[d] = true
	}
	out := make([]int, 0, len(days))
	for d, ok := range seen {
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (e *Engine) CreateGoal(in CreateGoalInput) (*Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.Due.IsZero() {
		return nil, InvalidInputError{Field: "due", Reason: "a due date is required"}
	}
	if in.DueTime != "" {
		if _, _, err := ParseClock(in.DueTime); err != nil {
			return nil, InvalidInputError{Field: "time", Reason: err.Error()}
		}
	}
	stat := in.Stat
	if stat == "" {
		stat = DefaultStat
	}
	if !stat.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStat, in.Stat)
	}

	rec := in.Recurrence
	if rec.Kind == "" {
		rec.Kind = RepeatNone
	}
	switch rec.Kind {
	case RepeatNone, RepeatDaily, RepeatWeekly:
		rec.Weekdays = nil
	case RepeatWeekdays:
		days, err := validateWeekdays("repeat days", rec.Weekdays)
		if err != nil {
			return nil, err
		}
		if len(days) == 0 {
			return nil, InvalidInputError{Field: "repeat days", Reason: "pick at least one weekday"}
		}
		rec.Weekdays = days
	default:
		return nil, InvalidInputError{Field: "repeat", Reason: fmt.Sprintf("unknown policy %q", rec.Kind)}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	due := Date(in.Due)
	e.st.Goals = append(e.st.Goals, Goal{
		ID:         e.newID(),
		Title:      title,
		Due:        due,
		DueTime:    strings.TrimSpace(in.DueTime),
		Size:       Classify(due, e.Today()),
		Category:   category,
		Stat:       stat,
		Recurrence: rec,
	})
	g := e.st.Goals[len(e.st.Goals)-1]
	return &g, nil
}

func (e *Engine) CreateHabit(in CreateHabitInput) (*Habit, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	days, err := validateWeekdays("days", in.Weekdays)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, InvalidInputError{Field: "days", Reason: "pick at least one weekday"}
	}
	stat := in.Stat
	if stat == "" {
		stat = StatDiscipline
	}
	if !stat.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStat, in.Stat)
	}

	e.st.Habits = append(e.st.Habits, Habit{
		ID:          e.newID(),
		Title:       title,
		Weekdays:    days,
		Stat:        stat,
		Completions: DateSet{},
		Failures:    DateSet{},
		CreatedOn:   e.Today(),
	})
	h := e.st.Habits[len(e.st.Habits)-1]
	return &h, nil
}

func (e *Engine) CreateBigGoal(in CreateBigGoalInput) (*BigGoal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.Due.IsZero() {
		return nil, InvalidInputError{Field: "due", Reason: "a due date is required"}
	}
	e.st.BigGoals = append(e.st.BigGoals, BigGoal{
		ID:    e.newID(),
		Title: title,
		Due:   Date(in.Due),
		Note:  strings.TrimSpace(in.Note),
	})
	b := e.st.BigGoals[len(e.st.BigGoals)-1]
	return &b, nil
}
