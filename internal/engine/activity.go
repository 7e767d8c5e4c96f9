package engine

import "time"

type ActivityKind string

const (
	ActivityGoalCompleted     ActivityKind = "goal_completed"
	ActivityGoalFailed        ActivityKind = "goal_failed"
	ActivityGoalMissed        ActivityKind = "goal_missed"
	ActivityHabitDone         ActivityKind = "habit_done"
	ActivityHabitFailed       ActivityKind = "habit_failed"
	ActivityHabitReverted     ActivityKind = "habit_reverted"
	ActivityBigGoalCompleted  ActivityKind = "big_goal_completed"
	ActivityBigGoalFailed     ActivityKind = "big_goal_failed"
	ActivityDisciplineAwarded ActivityKind = "discipline_awarded"
	ActivityLevelUp           ActivityKind = "level_up"
	ActivityYearRollover      ActivityKind = "year_rollover"
)

// Activity is one audit entry for something that changed the ledgers.
type Activity struct {
	At       time.Time
	Kind     ActivityKind
	EntityID string
	Title    string
	XPDelta  int
}

func (e *Engine) record(kind ActivityKind, id, title string, xp int) {
	e.activity = append(e.activity, Activity{
		At:       e.Now(),
		Kind:     kind,
		EntityID: id,
		Title:    title,
		XPDelta:  xp,
	})
}

// DrainActivity returns the entries recorded since the last drain.
func (e *Engine) DrainActivity() []Activity {
	out := e.activity
	e.activity = nil
	return out
}
