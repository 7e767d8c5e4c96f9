package engine

import (
	"fmt"
	"strings"
	"time"
)

// RescheduleGoal moves an open goal to a new due date and time and
// reclassifies it. An empty dueTime clears the time of day.
func (e *Engine) RescheduleGoal(ref string, due time.Time, dueTime string) (*Goal, error) {
	if due.IsZero() {
		return nil, InvalidInputError{Field: "due", Reason: "a due date is required"}
	}
	dueTime = strings.TrimSpace(dueTime)
	if dueTime != "" {
		if _, _, err := ParseClock(dueTime); err != nil {
			return nil, InvalidInputError{Field: "time", Reason: err.Error()}
		}
	}

	i, err := e.goalIndex(ref)
	if err != nil {
		return nil, err
	}
	g := &e.st.Goals[i]
	if g.Closed() {
		return nil, fmt.Errorf("%w: %q", ErrGoalClosed, g.Title)
	}
	g.Due = Date(due)
	g.DueTime = dueTime
	g.Size = Classify(g.Due, e.Today())
	g.Overdue = false
	out := *g
	return &out, nil
}
