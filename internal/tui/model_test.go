package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/internal/engine"
)

type memStore struct {
	data  map[string][]byte
	saves int
}

func (m *memStore) LoadSnapshot(_ context.Context, userID string) ([]byte, bool, error) {
	d, ok := m.data[userID]
	return d, ok, nil
}

func (m *memStore) SaveSnapshot(_ context.Context, userID string, data []byte) error {
	m.saves++
	m.data[userID] = data
	return nil
}

func (m *memStore) SaveRollover(_ context.Context, userID string, reset []byte, _ int, _ []byte) error {
	m.data[userID] = reset
	return nil
}

// 2024-03-15 is a Friday (weekday 4).
var boardNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T) (boardModel, *engine.Session, *memStore) {
	t.Helper()
	store := &memStore{data: map[string][]byte{}}
	svc := engine.NewService(store, engine.Options{Clock: engine.FixedClock{T: boardNow}, Location: time.UTC})
	sess, err := svc.Begin(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, sess.Mutate(context.Background(), func(e *engine.Engine) error {
		if _, err := e.CreateGoal(engine.CreateGoalInput{Title: "Pay rent", Due: boardNow}); err != nil {
			return err
		}
		if _, err := e.CreateGoal(engine.CreateGoalInput{Title: "Next week", Due: boardNow.AddDate(0, 0, 7)}); err != nil {
			return err
		}
		if _, err := e.CreateHabit(engine.CreateHabitInput{Title: "Stretch", Weekdays: []int{4}}); err != nil {
			return err
		}
		_, err := e.CreateHabit(engine.CreateHabitInput{Title: "Swim", Weekdays: []int{0}})
		return err
	}))
	return newBoardModel(context.Background(), sess), sess, store
}

func press(t *testing.T, m boardModel, keys string) boardModel {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	m = next.(boardModel)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(boardModel)
	}
	return m
}

func TestBoardListsToday(t *testing.T) {
	m, _, _ := newTestBoard(t)

	items := m.list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Pay rent", items[0].(boardItem).title)
	assert.Equal(t, kindGoal, items[0].(boardItem).kind)
	assert.Equal(t, "Stretch", items[1].(boardItem).title)
	assert.Equal(t, kindHabit, items[1].(boardItem).kind)
}

func TestBoardCompletesSelectedGoal(t *testing.T) {
	m, sess, store := newTestBoard(t)
	savesBefore := store.saves

	m = press(t, m, "d")

	st := sess.Engine().State()
	assert.True(t, st.Goals[0].Done)
	assert.Equal(t, 5, st.XP)
	assert.Equal(t, savesBefore+1, store.saves, "the outcome is persisted")
	assert.Contains(t, m.lastLog, "Done Pay rent: +5 XP")

	// A closed goal is not closed twice.
	m = press(t, m, "d")
	assert.Equal(t, "Already closed.", m.lastLog)
	assert.Equal(t, 5, sess.Engine().State().XP)
}

func TestBoardFailsHabit(t *testing.T) {
	m, sess, _ := newTestBoard(t)
	m.list.Select(1)

	m = press(t, m, "f")

	h := sess.Engine().State().Habits[0]
	assert.Equal(t, engine.MarkFailed, h.MarkOn(boardNow))
	assert.Equal(t, -10, sess.Engine().State().XP)
	assert.Equal(t, "failed today", m.list.Items()[1].(boardItem).status)
}

func TestBoardAppliesOutcomeInsideUpdate(t *testing.T) {
	m, sess, _ := newTestBoard(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(boardModel)

	assert.Nil(t, cmd)
	assert.True(t, sess.Engine().State().Goals[0].Done)
	assert.Contains(t, m.View(), "Level 1")
	assert.Contains(t, m.View(), "5/1000")
}

func TestBoardViewDoesNotReadEngineState(t *testing.T) {
	m, sess, _ := newTestBoard(t)
	shown := m

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			_ = shown.View()
		}
	}()
	for range 20 {
		require.NoError(t, sess.Mutate(context.Background(), func(e *engine.Engine) error {
			e.AddXP(100)
			return e.UpdateStat(engine.StatJoy, 0.5)
		}))
	}
	wg.Wait()

	assert.Contains(t, shown.View(), "0/1000")
}
