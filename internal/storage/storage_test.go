package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/internal/engine"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepo(openTestDB(t))

	_, ok, err := repo.LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SaveSnapshot(ctx, "alice", []byte(`{"xp":1}`)))
	require.NoError(t, repo.SaveSnapshot(ctx, "alice", []byte(`{"xp":2}`)))
	require.NoError(t, repo.SaveSnapshot(ctx, "bob", []byte(`{"xp":9}`)))

	data, ok, err := repo.LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"xp":2}`, string(data))

	s, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Revision)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestSaveRolloverWritesReportAndState(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	snaps := NewSnapshotRepo(db)
	reports := NewReportRepo(db)

	require.NoError(t, snaps.SaveSnapshot(ctx, "alice", []byte(`{"xp":1200}`)))
	require.NoError(t, snaps.SaveRollover(ctx, "alice", []byte(`{"xp":0}`), 2024, []byte("xlsx")))

	data, _, err := snaps.LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	assert.JSONEq(t, `{"xp":0}`, string(data))

	rep, err := reports.Get(ctx, "alice", 2024)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, []byte("xlsx"), rep.Data)

	missing, err := reports.Get(ctx, "alice", 2023)
	require.NoError(t, err)
	assert.Nil(t, missing)

	infos, err := reports.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 2024, infos[0].Year)
	assert.Equal(t, 4, infos[0].Size)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := upsertSnapshot(ctx, tx, "alice", []byte(`{}`), time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := NewSnapshotRepo(db).LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivityAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepo(openTestDB(t))
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, "alice", []engine.Activity{
		{At: base, Kind: engine.ActivityGoalCompleted, EntityID: "g1", Title: "Plan", XPDelta: 5},
		{At: base.Add(time.Minute), Kind: engine.ActivityHabitDone, EntityID: "h1", Title: "Read", XPDelta: 10},
		{At: base.Add(2 * time.Minute), Kind: engine.ActivityGoalMissed, EntityID: "g2", Title: "Call", XPDelta: -5},
	}))
	require.NoError(t, repo.Append(ctx, "bob", []engine.Activity{
		{At: base, Kind: engine.ActivityHabitDone, XPDelta: 10},
	}))
	require.NoError(t, repo.Append(ctx, "alice", nil))

	all, err := repo.ListRecent(ctx, "alice", "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Call", all[0].Title)
	assert.Equal(t, -5, all[0].XPDelta)
	assert.True(t, all[2].At.Equal(base))

	habits, err := repo.ListRecent(ctx, "alice", string(engine.ActivityHabitDone), 10)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "h1", habits[0].EntityID)

	counts, err := repo.CountByKind(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"goal_completed": 1, "habit_done": 1, "goal_missed": 1}, counts)
}

func TestSessionOverSQLite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	act := NewActivityRepo(db)
	svc := engine.NewService(NewSnapshotRepo(db), engine.Options{
		Clock:    engine.FixedClock{T: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
		Location: time.UTC,
		Activity: act,
	})

	sess, err := svc.Begin(ctx, "alice")
	require.NoError(t, err)
	var id string
	require.NoError(t, sess.Mutate(ctx, func(e *engine.Engine) error {
		h, err := e.CreateHabit(engine.CreateHabitInput{Title: "Stretch", Weekdays: []int{4}})
		if err != nil {
			return err
		}
		id = h.ID
		_, err = e.MarkHabitDone(id, e.Today())
		return err
	}))
	assert.Empty(t, sess.Warnings())

	again, err := svc.Begin(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, again.Engine().State().Habits, 1)
	assert.Equal(t, 10, again.Engine().State().XP)

	entries, err := act.ListRecent(ctx, "alice", "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].EntityID)
}
