package engine

import (
	"fmt"
	"slices"
)

func (e *Engine) CompleteBigGoal(ref string) (*OutcomeResult, error) {
	return e.resolveBigGoal(ref, true)
}

func (e *Engine) FailBigGoal(ref string) (*OutcomeResult, error) {
	return e.resolveBigGoal(ref, false)
}

func (e *Engine) resolveBigGoal(ref string, success bool) (*OutcomeResult, error) {
	i, err := e.bigGoalIndex(ref)
	if err != nil {
		return nil, err
	}
	b := &e.st.BigGoals[i]
	if b.Closed() {
		return nil, fmt.Errorf("%w: %q", ErrBigGoalClosed, b.Title)
	}
	res := e.beginOutcome(b.ID, b.Title)
	if success {
		b.Done = true
	} else {
		b.Failed = true
	}
	e.awardForBigGoal(b, success)
	return e.finishOutcome(res), nil
}

func (e *Engine) DeleteBigGoal(ref string) (BigGoal, error) {
	i, err := e.bigGoalIndex(ref)
	if err != nil {
		return BigGoal{}, err
	}
	b := e.st.BigGoals[i]
	e.st.BigGoals = slices.Delete(e.st.BigGoals, i, i+1)
	return b, nil
}

// ListBigGoals returns big goals ordered by due date.
func (e *Engine) ListBigGoals(status GoalStatus) []BigGoal {
	var out []BigGoal
	for _, b := range e.st.BigGoals {
		switch status {
		case StatusActive:
			if b.Closed() {
				continue
			}
		case StatusDone:
			if !b.Done {
				continue
			}
		case StatusFailed:
			if !b.Failed {
				continue
			}
		}
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(a, b BigGoal) int { return a.Due.Compare(b.Due) })
	return out
}
