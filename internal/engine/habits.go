package engine

import (
	"slices"
	"time"
)

// IsScheduled reports whether the habit is due on d's weekday.
func IsScheduled(h *Habit, d time.Time) bool {
	return slices.Contains(h.Weekdays, Weekday(d))
}

// HabitMark is the state of a habit on one date.
type HabitMark int

const (
	MarkNone HabitMark = iota
	MarkDone
	MarkFailed
)

func (h *Habit) MarkOn(d time.Time) HabitMark {
	switch {
	case h.Completions.Has(d):
		return MarkDone
	case h.Failures.Has(d):
		return MarkFailed
	default:
		return MarkNone
	}
}

func (e *Engine) MarkHabitDone(ref string, d time.Time) (*OutcomeResult, error) {
	return e.markHabit(ref, d, true)
}

func (e *Engine) MarkHabitFailed(ref string, d time.Time) (*OutcomeResult, error) {
	return e.markHabit(ref, d, false)
}

// markHabit records one side for date d. Re-marking the same side is a
// no-op. Marking the opposite side first reverses the earlier mark, so a
// date only ever carries the effect of its latest mark.
func (e *Engine) markHabit(ref string, d time.Time, success bool) (*OutcomeResult, error) {
	i, err := e.habitIndex(ref)
	if err != nil {
		return nil, err
	}
	h := &e.st.Habits[i]
	d = Date(d)

	same, other := h.Completions, h.Failures
	if !success {
		same, other = h.Failures, h.Completions
	}

	res := e.beginOutcome(h.ID, h.Title)
	if same.Has(d) {
		return e.finishOutcome(res), nil
	}
	if other.Has(d) {
		other.Remove(d)
		e.applyHabit(h, !success, -1)
		e.record(ActivityHabitReverted, h.ID, h.Title, e.habitXP(!success, -1))
	}
	same.Add(d)
	e.applyHabit(h, success, 1)
	kind := ActivityHabitDone
	if !success {
		kind = ActivityHabitFailed
	}
	e.record(kind, h.ID, h.Title, e.habitXP(success, 1))
	return e.finishOutcome(res), nil
}

func (e *Engine) habitXP(success bool, dir int) int {
	if success {
		return dir * HabitXP
	}
	return -dir * HabitXP
}

// applyHabit applies (dir=1) or reverses (dir=-1) one mark's XP and stat
// effect.
func (e *Engine) applyHabit(h *Habit, success bool, dir int) {
	xp := e.habitXP(success, dir)
	e.AddXP(xp)
	e.mustUpdateStat(h.Stat, float64(xp/HabitXP))
}

func (e *Engine) DeleteHabit(ref string) (Habit, error) {
	i, err := e.habitIndex(ref)
	if err != nil {
		return Habit{}, err
	}
	h := e.st.Habits[i]
	e.st.Habits = slices.Delete(e.st.Habits, i, i+1)
	return h, nil
}

// HabitsOn returns the habits scheduled on d.
func (e *Engine) HabitsOn(d time.Time) []Habit {
	var out []Habit
	for i := range e.st.Habits {
		if IsScheduled(&e.st.Habits[i], d) {
			out = append(out, e.st.Habits[i])
		}
	}
	return out
}

func (e *Engine) ListHabits() []Habit {
	return slices.Clone(e.st.Habits)
}
