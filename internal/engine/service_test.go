package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data     map[string][]byte
	reports  map[int][]byte
	loadErr  error
	saveErr  error
	saves    int
	rollouts int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, reports: map[int][]byte{}}
}

func (m *memStore) LoadSnapshot(_ context.Context, userID string) ([]byte, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	d, ok := m.data[userID]
	return d, ok, nil
}

func (m *memStore) SaveSnapshot(_ context.Context, userID string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[userID] = data
	return nil
}

func (m *memStore) SaveRollover(_ context.Context, userID string, reset []byte, year int, report []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rollouts++
	m.data[userID] = reset
	m.reports[year] = report
	return nil
}

type memActivity struct {
	entries []Activity
}

func (m *memActivity) Append(_ context.Context, _ string, entries []Activity) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func newTestService(store SnapshotStore, now time.Time, ex Exporter, act ActivityLog) *Service {
	return NewService(store, Options{
		Clock:    FixedClock{T: now},
		Location: time.UTC,
		Rollover: RolloverPolicy{Location: msk, CutoffHour: 12},
		Exporter: ex,
		Activity: act,
	})
}

func TestBeginRequiresIdentity(t *testing.T) {
	svc := newTestService(newMemStore(), testNow, nil, nil)
	_, err := svc.Begin(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMutationsArePersisted(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	act := &memActivity{}
	svc := newTestService(store, testNow, &countingExporter{}, act)

	sess, err := svc.Begin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, store.saves, "nothing to save on a quiet start")

	var id string
	err = sess.Mutate(ctx, func(e *Engine) error {
		g, err := e.CreateGoal(CreateGoalInput{Title: "Walk the dog", Due: day("2024-03-16")})
		if err != nil {
			return err
		}
		id = g.ID
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		_, err := e.CompleteGoal(id)
		return err
	}))
	assert.Equal(t, 2, store.saves)
	assert.Empty(t, sess.Warnings())
	require.Len(t, act.entries, 1)
	assert.Equal(t, ActivityGoalCompleted, act.entries[0].Kind)

	err = sess.Mutate(ctx, func(e *Engine) error {
		_, err := e.CompleteGoal(id)
		return err
	})
	assert.ErrorIs(t, err, ErrGoalClosed)
	assert.Equal(t, 2, store.saves, "a failed mutation is not saved")

	again, err := svc.Begin(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, again.Engine().State().Goals, 1)
	assert.True(t, again.Engine().State().Goals[0].Done)
	assert.Equal(t, 5, again.Engine().State().XP)
}

func TestStartupSweepIsPersistedOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	yesterday := newTestService(store, testNow.AddDate(0, 0, -3), nil, nil)
	sess, err := yesterday.Begin(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		_, err := e.CreateGoal(CreateGoalInput{Title: "Water plants", Due: day("2024-03-12"), Recurrence: Recurrence{Kind: RepeatDaily}})
		return err
	}))
	require.Equal(t, 1, store.saves)

	svc := newTestService(store, testNow, nil, nil)
	sess, err = svc.Begin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 3, sess.Startup.Sweep.Penalties)
	assert.Equal(t, 2, store.saves)

	sess, err = svc.Begin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Startup.Sweep.Penalties)
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, -15, sess.Engine().State().XP)
}

func TestLoadFailureRunsLocalOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.loadErr = errors.New("connection refused")
	ex := &countingExporter{}
	// Past the Moscow cutoff on Dec 31: a loaded state would roll over.
	svc := newTestService(store, time.Date(2024, 12, 31, 13, 0, 0, 0, time.UTC), ex, nil)

	sess, err := svc.Begin(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, sess.LocalOnly())
	assert.Len(t, sess.Warnings(), 1)
	assert.Equal(t, 0, ex.calls, "no report of the placeholder state")
	assert.Zero(t, sess.Startup.RolloverYear)
	assert.Nil(t, sess.Report)
	assert.Nil(t, sess.Engine().State().LastResetYear)
	assert.Equal(t, 0, store.rollouts)

	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		_, err := e.CreateHabit(CreateHabitInput{Title: "Floss", Weekdays: []int{4}})
		return err
	}))
	assert.Len(t, sess.Engine().State().Habits, 1)
	assert.Equal(t, 0, store.saves)
}

func TestCorruptSnapshotRunsLocalOnly(t *testing.T) {
	store := newMemStore()
	store.data["dave"] = []byte("{broken")
	svc := newTestService(store, testNow, nil, nil)

	sess, err := svc.Begin(context.Background(), "dave")
	require.NoError(t, err)
	assert.True(t, sess.LocalOnly())
	assert.Equal(t, []byte("{broken"), store.data["dave"])
}

func TestSaveFailureBecomesWarning(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, testNow, nil, nil)
	sess, err := svc.Begin(ctx, "erin")
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		_, err := e.CreateBigGoal(CreateBigGoalInput{Title: "Learn piano", Due: day("2024-12-01")})
		return err
	}))
	assert.Len(t, sess.Engine().State().BigGoals, 1, "the change stands in memory")
	require.Len(t, sess.Warnings(), 1)
	assert.Contains(t, sess.Warnings()[0], "may not be saved")
}

func TestRolloverOncePerYearAcrossSessions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ex := &countingExporter{}
	start := time.Date(2024, 12, 31, 6, 0, 0, 0, time.UTC)

	morning := newTestService(store, start, ex, nil)
	sess, err := morning.Begin(ctx, "frank")
	require.NoError(t, err)
	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		e.AddXP(700)
		return nil
	}))
	assert.Equal(t, 0, ex.calls)

	afternoon := newTestService(store, start.Add(4*time.Hour), ex, nil)
	for i := 0; i < 2; i++ {
		sess, err = afternoon.Begin(ctx, "frank")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 1, store.rollouts)
	assert.Equal(t, "report 2024 xp=700", string(store.reports[2024]))

	st := sess.Engine().State()
	assert.Equal(t, 0, st.XP)
	require.NotNil(t, st.LastResetYear)
	assert.Equal(t, 2024, *st.LastResetYear)

	lvl, year := sess.Notices(ctx)
	assert.Equal(t, 0, lvl)
	assert.Equal(t, 2024, year)
	lvl, year = sess.Notices(ctx)
	assert.Equal(t, 0, lvl)
	assert.Equal(t, 0, year)
}

func TestRolloverSaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ex := &countingExporter{}
	now := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)

	seed := newTestService(store, now.Add(-10*time.Hour), ex, nil)
	sess, err := seed.Begin(ctx, "gina")
	require.NoError(t, err)
	require.NoError(t, sess.Mutate(ctx, func(e *Engine) error {
		e.AddXP(40)
		return nil
	}))

	store.saveErr = errors.New("locked")
	svc := newTestService(store, now, ex, nil)
	sess, err = svc.Begin(ctx, "gina")
	require.NoError(t, err)
	assert.Equal(t, 40, sess.Engine().State().XP)
	assert.Nil(t, sess.Engine().State().LastResetYear)
	assert.NotEmpty(t, sess.Warnings())

	store.saveErr = nil
	sess, err = svc.Begin(ctx, "gina")
	require.NoError(t, err)
	assert.Equal(t, 2024, sess.Startup.RolloverYear)
	assert.Equal(t, 0, sess.Engine().State().XP)
	assert.Equal(t, 2, ex.calls)
}
