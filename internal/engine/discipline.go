package engine

import (
	"slices"
	"time"
)

// DisciplineBonus is added to the discipline stat for each perfect day.
const DisciplineBonus = 1.0

// DayComplete reports whether every obligation scheduled on d was met:
// something was scheduled, nothing scheduled failed, every one-off goal due
// on d is done, no recurring goal is still sitting on d, and every habit
// scheduled on d was completed.
func (e *Engine) DayComplete(d time.Time) bool {
	d = Date(d)

	var goals []*Goal
	for i := range e.st.Goals {
		if e.st.Goals[i].Due.Equal(d) {
			goals = append(goals, &e.st.Goals[i])
		}
	}
	var habits []*Habit
	for i := range e.st.Habits {
		if IsScheduled(&e.st.Habits[i], d) {
			habits = append(habits, &e.st.Habits[i])
		}
	}
	if len(goals) == 0 && len(habits) == 0 {
		return false
	}

	for _, g := range goals {
		if g.Failed {
			return false
		}
		// A recurring goal still due on d was never advanced that day.
		if g.Recurrence.IsRecurring() {
			return false
		}
		if !g.Done {
			return false
		}
	}
	for _, h := range habits {
		if h.Failures.Has(d) || !h.Completions.Has(d) {
			return false
		}
	}
	return true
}

// AwardYesterdayIfEligible grants the discipline bonus for yesterday once.
// An awarded date is never re-evaluated.
func (e *Engine) AwardYesterdayIfEligible() bool {
	y := e.Yesterday()
	if e.st.DisciplineAwarded.Has(y) || !e.DayComplete(y) {
		return false
	}
	e.mustUpdateStat(StatDiscipline, DisciplineBonus)
	e.st.DisciplineAwarded.Add(y)
	e.record(ActivityDisciplineAwarded, "", FormatDate(y), 0)
	return true
}

// CurrentStreak counts consecutive awarded dates ending at yesterday.
func (e *Engine) CurrentStreak() int {
	n := 0
	for d := e.Yesterday(); e.st.DisciplineAwarded.Has(d); d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}

// BestStreak is the longest run of consecutive awarded dates.
func (e *Engine) BestStreak() int {
	return bestRun(e.st.DisciplineAwarded)
}

func bestRun(set DateSet) int {
	var days []time.Time
	for _, s := range set.Sorted() {
		if d, err := ParseDate(s); err == nil {
			days = append(days, d)
		}
	}
	days = slices.CompactFunc(days, time.Time.Equal)

	best, cur := 0, 0
	for i, d := range days {
		if i > 0 && DaysBetween(days[i-1], d) == 1 {
			cur++
		} else {
			cur = 1
		}
		best = max(best, cur)
	}
	return best
}
