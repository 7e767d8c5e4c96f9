package engine

// awardForGoal applies a goal's reward (success) or penalty. Every goal
// outcome, manual or swept, goes through here.
func (e *Engine) awardForGoal(g *Goal, success bool, kind ActivityKind) {
	xp := g.Size.Reward()
	sign := 1.0
	if !success {
		xp = -xp
		sign = -1
	}
	e.AddXP(xp)
	e.mustUpdateStat(g.Stat, sign*1)
	e.mustUpdateStat(StatDiscipline, sign*0.1)
	e.record(kind, g.ID, g.Title, xp)
}

// awardForBigGoal moves XP by 250 and every stat by 10.
func (e *Engine) awardForBigGoal(b *BigGoal, success bool) {
	xp, delta, kind := BigGoalXP, BigGoalStats, ActivityBigGoalCompleted
	if !success {
		xp, delta, kind = -BigGoalXP, -BigGoalStats, ActivityBigGoalFailed
	}
	e.AddXP(xp)
	for _, s := range AllStats {
		e.mustUpdateStat(s, delta)
	}
	e.record(kind, b.ID, b.Title, xp)
}
