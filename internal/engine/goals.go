package engine

import (
	"fmt"
	"slices"
	"time"
)

// OutcomeResult describes the effect of closing (or advancing) an entity.
type OutcomeResult struct {
	ID          string
	Title       string
	XPDelta     int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool

	// Advanced is set when a recurring goal moved on instead of closing.
	Advanced bool
	NextDue  time.Time
}

func (e *Engine) beginOutcome(id, title string) *OutcomeResult {
	return &OutcomeResult{ID: id, Title: title, XPDelta: -e.st.XP, LevelBefore: e.st.Level}
}

func (e *Engine) finishOutcome(r *OutcomeResult) *OutcomeResult {
	r.XPDelta += e.st.XP
	r.LevelAfter = e.st.Level
	r.LevelUp = r.LevelAfter > r.LevelBefore
	return r
}

func (e *Engine) CompleteGoal(ref string) (*OutcomeResult, error) {
	return e.resolveGoal(ref, true)
}

func (e *Engine) FailGoal(ref string) (*OutcomeResult, error) {
	return e.resolveGoal(ref, false)
}

func (e *Engine) resolveGoal(ref string, success bool) (*OutcomeResult, error) {
	i, err := e.goalIndex(ref)
	if err != nil {
		return nil, err
	}
	g := &e.st.Goals[i]
	if g.Closed() {
		return nil, fmt.Errorf("%w: %q", ErrGoalClosed, g.Title)
	}

	kind := ActivityGoalCompleted
	if !success {
		kind = ActivityGoalFailed
	}

	res := e.beginOutcome(g.ID, g.Title)
	if g.Recurrence.IsRecurring() {
		e.awardForGoal(g, success, kind)
		e.advanceGoal(g)
		res.Advanced = true
		res.NextDue = g.Due
	} else {
		if success {
			g.Done = true
		} else {
			g.Failed = true
		}
		e.awardForGoal(g, success, kind)
	}
	return e.finishOutcome(res), nil
}

// advanceGoal moves a recurring goal to its next occurrence.
func (e *Engine) advanceGoal(g *Goal) {
	g.Due = NextDue(g.Due, g.Recurrence)
	g.Size = Classify(g.Due, e.Today())
	g.Overdue = false
}

// DeleteGoal removes a goal and returns it. No reward or penalty applies.
func (e *Engine) DeleteGoal(ref string) (Goal, error) {
	i, err := e.goalIndex(ref)
	if err != nil {
		return Goal{}, err
	}
	g := e.st.Goals[i]
	e.st.Goals = slices.Delete(e.st.Goals, i, i+1)
	return g, nil
}

// GoalStatus filters listings by lifecycle state.
type GoalStatus string

const (
	StatusAll    GoalStatus = "all"
	StatusActive GoalStatus = "active"
	StatusDone   GoalStatus = "done"
	StatusFailed GoalStatus = "failed"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case StatusAll, StatusActive, StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

type GoalFilter struct {
	Size     SizeClass
	Category string
	Status   GoalStatus
	// On restricts the listing to goals due on that date.
	On *time.Time
}

func (f GoalFilter) match(g *Goal) bool {
	if f.Size != "" && g.Size != f.Size {
		return false
	}
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	if f.On != nil && !g.Due.Equal(Date(*f.On)) {
		return false
	}
	switch f.Status {
	case StatusActive:
		return !g.Closed()
	case StatusDone:
		return g.Done
	case StatusFailed:
		return g.Failed
	}
	return true
}

// ListGoals returns matching goals ordered by due date, then due time.
func (e *Engine) ListGoals(f GoalFilter) []Goal {
	var out []Goal
	for i := range e.st.Goals {
		if f.match(&e.st.Goals[i]) {
			out = append(out, e.st.Goals[i])
		}
	}
	slices.SortStableFunc(out, func(a, b Goal) int {
		if c := a.Due.Compare(b.Due); c != 0 {
			return c
		}
		return compareDueTime(a.DueTime, b.DueTime)
	})
	return out
}

// goals without a time sort after timed ones on the same day
func compareDueTime(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

// GoalsDueOn returns the goals whose current due date is d.
func (e *Engine) GoalsDueOn(d time.Time) []Goal {
	return e.ListGoals(GoalFilter{On: &d})
}
