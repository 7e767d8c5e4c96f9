package engine

import "fmt"

const (
	// XPPerLevel is the XP span of one level.
	XPPerLevel = 1000

	HabitXP      = 10
	BigGoalXP    = 250
	BigGoalStats = 10.0
)

// LevelForXP returns max(1, floor(xp/1000)+1). Division floors toward
// negative infinity, so any negative balance maps to level 1.
func LevelForXP(xp int) int {
	return max(1, floorDiv(xp, XPPerLevel)+1)
}

// XPIntoLevel returns how far xp is into its current level, in [0, 1000).
func XPIntoLevel(xp int) int {
	return xp - floorDiv(xp, XPPerLevel)*XPPerLevel
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// AddXP applies delta to the XP balance and today's ledger entry and
// recomputes the level. Crossing into a higher level raises a one-shot
// level-up event (see TakeLevelUp).
func (e *Engine) AddXP(delta int) {
	st := e.st
	before := st.Level
	st.XP += delta
	st.XPLog[FormatDate(e.Today())] += delta
	st.Level = LevelForXP(st.XP)
	if st.Level > before {
		st.PendingLevelUp = st.Level
		e.record(ActivityLevelUp, "", fmt.Sprintf("level %d", st.Level), 0)
	}
}

// TakeLevelUp consumes the pending level-up event, if any.
func (e *Engine) TakeLevelUp() (int, bool) {
	lvl := e.st.PendingLevelUp
	if lvl == 0 {
		return 0, false
	}
	e.st.PendingLevelUp = 0
	return lvl, true
}

// TakeReportNotice consumes the pending "yearly report ready" event.
func (e *Engine) TakeReportNotice() (int, bool) {
	year := e.st.PendingReportYear
	if year == 0 {
		return 0, false
	}
	e.st.PendingReportYear = 0
	return year, true
}
