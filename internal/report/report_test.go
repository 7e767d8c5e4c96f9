package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lifequest/internal/engine"
)

func sampleState(t *testing.T) *engine.State {
	t.Helper()
	now := time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC)
	e := engine.New(nil, engine.FixedClock{T: now}, time.UTC)

	g, err := e.CreateGoal(engine.CreateGoalInput{Title: "Ship v1", Due: now, Category: "work"})
	require.NoError(t, err)
	_, err = e.CompleteGoal(g.ID)
	require.NoError(t, err)
	_, err = e.CreateGoal(engine.CreateGoalInput{Title: "Gym", Due: now.AddDate(0, 0, 1), Recurrence: engine.Recurrence{Kind: engine.RepeatDaily}})
	require.NoError(t, err)
	h, err := e.CreateHabit(engine.CreateHabitInput{Title: "Read", Weekdays: []int{1}})
	require.NoError(t, err)
	_, err = e.MarkHabitDone(h.ID, now)
	require.NoError(t, err)
	_, err = e.CreateBigGoal(engine.CreateBigGoalInput{Title: "Run a marathon", Due: now.AddDate(1, 0, 0), Note: "spring"})
	require.NoError(t, err)

	st := e.State()
	st.XPLog["2023-06-01"] = 99
	return st
}

func TestExportWritesAllSheets(t *testing.T) {
	data, err := Exporter{}.Export(sampleState(t), 2024)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDailyXP, SheetGoals, SheetBigGoals, SheetHabits}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Year", "2024"}, summary[1])
	assert.Equal(t, []string{"Goals", "2"}, summary[2])
	assert.Equal(t, []string{"Goals done", "1"}, summary[3])
	assert.Equal(t, []string{"Final XP", "15"}, summary[12])

	daily, err := f.GetRows(SheetDailyXP)
	require.NoError(t, err)
	require.Len(t, daily, 2, "entries from other years are left out")
	assert.Equal(t, []string{"2024-12-31", "15"}, daily[1])

	goals, err := f.GetRows(SheetGoals)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "Ship v1", goals[1][1])
	assert.Equal(t, "daily", goals[2][7])

	habits, err := f.GetRows(SheetHabits)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Tue", habits[1][2])
	assert.Equal(t, "2024-12-31", habits[1][6])

	big, err := f.GetRows(SheetBigGoals)
	require.NoError(t, err)
	require.Len(t, big, 2)
	assert.Equal(t, "spring", big[1][5])
}

func TestExportEmptyState(t *testing.T) {
	data, err := Exporter{}.Export(engine.NewState(), 2025)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "year_report_2025.xlsx", FileName(2025))
}
