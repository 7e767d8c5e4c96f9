package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvariantsHoldAcrossOperations(t *testing.T) {
	e := newTestEngine(t, testNow)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10; i++ {
		_, err := e.CreateGoal(CreateGoalInput{Title: "goal", Due: testNow.AddDate(0, 0, rng.Intn(200)-20), Stat: AllStats[rng.Intn(6)]})
		require.NoError(t, err)
	}
	_, err := e.CreateGoal(CreateGoalInput{Title: "daily", Due: day("2024-03-01"), Recurrence: Recurrence{Kind: RepeatDaily}})
	require.NoError(t, err)
	h, err := e.CreateHabit(CreateHabitInput{Title: "habit", Weekdays: []int{0, 1, 2, 3, 4, 5, 6}, Stat: StatJoy})
	require.NoError(t, err)
	b, err := e.CreateBigGoal(CreateBigGoalInput{Title: "big", Due: day("2024-02-01")})
	require.NoError(t, err)

	require.NoError(t, checkInvariants(e.State()))

	e.SweepOverdue()
	require.NoError(t, checkInvariants(e.State()))
	e.SweepBigGoals()
	require.NoError(t, checkInvariants(e.State()))

	for i := 0; i < 60; i++ {
		goals := e.State().Goals
		g := goals[rng.Intn(len(goals))]
		switch rng.Intn(4) {
		case 0:
			_, _ = e.CompleteGoal(g.ID)
		case 1:
			_, _ = e.FailGoal(g.ID)
		case 2:
			_, err = e.MarkHabitDone(h.ID, testNow.AddDate(0, 0, -rng.Intn(5)))
			require.NoError(t, err)
		default:
			_, err = e.MarkHabitFailed(h.ID, testNow.AddDate(0, 0, -rng.Intn(5)))
			require.NoError(t, err)
		}
		require.NoError(t, checkInvariants(e.State()), "step %d", i)
	}

	_, err = e.CompleteBigGoal(b.ID)
	assert.ErrorIs(t, err, ErrBigGoalClosed)
	require.NoError(t, checkInvariants(e.State()))
}

func TestCheckInvariantsReportsViolations(t *testing.T) {
	st := NewState()
	st.XP = 2500
	st.Stats[StatJoy] = -1
	st.Goals = []Goal{{ID: "g", Done: true, Failed: true}}
	st.Habits = []Habit{{ID: "h", Completions: NewDateSet("2024-01-01"), Failures: NewDateSet("2024-01-01")}}

	err := checkInvariants(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level 1 for 2500 xp, want 3")
	assert.Contains(t, err.Error(), "stat joy negative")
	assert.Contains(t, err.Error(), "goal g both done and failed")
	assert.Contains(t, err.Error(), "habit h both done and failed on 2024-01-01")
}
