package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsights(t *testing.T) {
	e := newTestEngine(t, testNow)
	st := e.State()
	st.Goals = []Goal{
		{ID: "1", Category: "work", Size: SizeShort, Done: true},
		{ID: "2", Category: "work", Size: SizeShort, Failed: true, Overdue: true},
		{ID: "3", Category: "family", Size: SizeMid, Done: true},
		{ID: "4", Category: "family", Size: SizeLong},
	}
	st.Habits = []Habit{{
		ID:          "h",
		Title:       "Read",
		Weekdays:    []int{0, 4},
		Completions: NewDateSet("2024-03-11", "2024-03-15", "2024-03-08"),
		Failures:    NewDateSet("2024-03-04"),
	}}
	st.BigGoals = []BigGoal{
		{ID: "b1", Due: day("2024-03-01")},
		{ID: "b2", Due: day("2024-06-01"), Done: true},
	}
	st.XPLog = map[string]int{"2024-03-15": 30, "2024-03-14": -5, "2024-03-10": 70, "2024-01-01": 500}

	in := e.Insights()

	assert.Equal(t, GoalCounts{
		Total: 4, Active: 1, Done: 2, Failed: 1, Overdue: 1,
		BySize: map[SizeClass]int{SizeShort: 2, SizeMid: 1, SizeLong: 1},
		ByCat:  map[string]int{"work": 2, "family": 2},
	}, in.Goals)

	require.Len(t, in.Categories, 2)
	assert.Equal(t, CategorySuccess{Category: "family", Done: 1, Failed: 0, Rate: 100}, in.Categories[0])
	assert.Equal(t, CategorySuccess{Category: "work", Done: 1, Failed: 1, Rate: 50}, in.Categories[1])

	require.Len(t, in.Habits, 1)
	assert.Equal(t, 75.0, in.Habits[0].Rate)
	assert.Equal(t, 50.0, in.HabitsByWeekday[0])
	assert.Equal(t, 100.0, in.HabitsByWeekday[4])
	assert.Equal(t, 0.0, in.HabitsByWeekday[2])

	require.Len(t, in.LastWeek, 7)
	assert.Equal(t, day("2024-03-09"), in.LastWeek[0].Date)
	assert.Equal(t, 30, in.LastWeek[6].XP)
	assert.Equal(t, 3.2, in.Average30)
	require.Len(t, in.Top3, 3)
	assert.Equal(t, 70, in.Top3[0].XP)
	assert.Equal(t, 30, in.Top3[1].XP)

	assert.Equal(t, BigGoalCounts{Total: 2, Active: 1, Done: 1, PastDue: 1}, in.BigGoals)
}

func TestMilestones(t *testing.T) {
	e := newTestEngine(t, testNow)
	assert.Equal(t, 0, CountEarned(e.Milestones()))

	e.AddXP(4100)
	e.State().DisciplineAwarded = NewDateSet("2024-03-12", "2024-03-13", "2024-03-14")
	e.State().BigGoals = []BigGoal{{ID: "b", Done: true}}

	earned := map[string]bool{}
	for _, m := range e.Milestones() {
		earned[m.ID] = m.Earned
	}
	assert.True(t, earned["getting_started"])
	assert.True(t, earned["on_the_path"])
	assert.False(t, earned["seasoned"])
	assert.True(t, earned["three_in_a_row"])
	assert.False(t, earned["full_week"])
	assert.True(t, earned["big_win"])
	assert.Equal(t, 4, CountEarned(e.Milestones()))
}
