package engine

// maxSweepSteps bounds the catch-up loop for one recurring goal. It is far
// above a couple of years of daily occurrences.
const maxSweepSteps = 800

// SweepResult summarizes one overdue pass.
type SweepResult struct {
	GoalsFailed     int
	Penalties       int
	BigGoalsFailed  int
	XPDelta         int
	StepCapExceeded []string
}

func (r SweepResult) Changed() bool {
	return r.Penalties > 0 || r.GoalsFailed > 0 || r.BigGoalsFailed > 0
}

// SweepOverdue penalizes goals whose due instant has passed. A one-off goal
// is failed once. A recurring goal is penalized and advanced once per
// missed occurrence until its due date is no longer before today. Closed
// goals are skipped, so a second pass is a no-op.
func (e *Engine) SweepOverdue() SweepResult {
	var res SweepResult
	xpBefore := e.st.XP
	now := e.Now()
	today := e.Today()

	for i := range e.st.Goals {
		g := &e.st.Goals[i]
		if g.Closed() {
			continue
		}
		if !DueInstant(*g, e.loc).Before(now) {
			continue
		}

		if !g.Recurrence.IsRecurring() {
			g.Overdue = true
			g.Failed = true
			e.awardForGoal(g, false, ActivityGoalMissed)
			res.GoalsFailed++
			res.Penalties++
			continue
		}

		steps := 0
		for g.Due.Before(today) {
			if steps == maxSweepSteps {
				res.StepCapExceeded = append(res.StepCapExceeded, g.ID)
				break
			}
			next := NextDue(g.Due, g.Recurrence)
			if !next.After(g.Due) {
				// policy that cannot advance; never loop on it
				res.StepCapExceeded = append(res.StepCapExceeded, g.ID)
				break
			}
			e.awardForGoal(g, false, ActivityGoalMissed)
			g.Due = next
			g.Size = Classify(g.Due, today)
			steps++
			res.Penalties++
		}
		g.Overdue = false
	}

	res.XPDelta = e.st.XP - xpBefore
	return res
}

// SweepBigGoals fails every open big goal whose due date is before today.
func (e *Engine) SweepBigGoals() SweepResult {
	var res SweepResult
	xpBefore := e.st.XP
	today := e.Today()
	for i := range e.st.BigGoals {
		b := &e.st.BigGoals[i]
		if b.Closed() || !b.Due.Before(today) {
			continue
		}
		b.Failed = true
		e.awardForBigGoal(b, false)
		res.BigGoalsFailed++
	}
	res.XPDelta = e.st.XP - xpBefore
	return res
}
