package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifequest/internal/logging"
)

// SnapshotStore persists one serialized State per user.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, userID string) ([]byte, bool, error)
	SaveSnapshot(ctx context.Context, userID string, data []byte) error
	// SaveRollover stores a yearly report together with the reset state, so
	// neither is durable without the other.
	SaveRollover(ctx context.Context, userID string, reset []byte, year int, report []byte) error
}

// ActivityLog receives the audit entries produced by persisted mutations.
type ActivityLog interface {
	Append(ctx context.Context, userID string, entries []Activity) error
}

type Options struct {
	Clock    Clock
	Location *time.Location
	Rollover RolloverPolicy
	Exporter Exporter
	Activity ActivityLog
	Logger   *slog.Logger
}

type Service struct {
	store SnapshotStore
	opts  Options
	log   *slog.Logger
}

func NewService(store SnapshotStore, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Service{store: store, opts: opts, log: log}
}

// StartupReport records what the automatic passes did when a session began.
type StartupReport struct {
	Sweep             SweepResult
	BigGoals          SweepResult
	DisciplineAwarded bool
	RolloverYear      int
}

// Session is one invocation for one user: the state is loaded once, the
// automatic passes run, and every mutation is persisted as it happens.
type Session struct {
	UserID  string
	Startup StartupReport
	// Report holds the yearly report produced by a rollover in this session.
	Report []byte

	svc       *Service
	eng       *Engine
	localOnly bool
	warnings  []string
}

// Begin loads the user's state and runs the startup passes in order:
// overdue sweep, yesterday's discipline award, big-goal sweep, yearly
// rollover. A store failure on load does not abort the session; it runs
// local-only and is never saved, so it cannot overwrite what the store
// holds.
func (s *Service) Begin(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	sess := &Session{UserID: userID, svc: s}
	log := s.log.With("user", userID)

	st := NewState()
	data, ok, err := s.store.LoadSnapshot(ctx, userID)
	switch {
	case err != nil:
		log.Warn("load state failed, running local-only", "err", err)
		sess.warn("could not load your saved progress (%v); changes in this session will not be saved", err)
		sess.localOnly = true
	case ok:
		today := Date(s.clock().Now().In(s.location()))
		decoded, warnings, err := DecodeSnapshot(data, today)
		if err != nil {
			log.Warn("stored state unreadable, running local-only", "err", err)
			sess.warn("saved progress is unreadable (%v); changes in this session will not be saved", err)
			sess.localOnly = true
			break
		}
		for _, w := range warnings {
			log.Info("snapshot repaired", "detail", w)
		}
		st = decoded
	}

	sess.eng = New(st, s.clock(), s.location())
	sess.runStartup(ctx, log)
	return sess, nil
}

func (s *Service) clock() Clock {
	if s.opts.Clock == nil {
		return RealClock{}
	}
	return s.opts.Clock
}

func (s *Service) location() *time.Location {
	if s.opts.Location == nil {
		return time.Local
	}
	return s.opts.Location
}

func (sess *Session) runStartup(ctx context.Context, log *slog.Logger) {
	e := sess.eng
	rep := &sess.Startup

	rep.Sweep = e.SweepOverdue()
	if rep.Sweep.Changed() {
		log.Info("sweep", "goals_failed", rep.Sweep.GoalsFailed, "penalties", rep.Sweep.Penalties, "xp_delta", rep.Sweep.XPDelta)
	}
	for _, id := range rep.Sweep.StepCapExceeded {
		log.Warn("sweep stopped early on goal", "goal", id)
	}

	rep.DisciplineAwarded = e.AwardYesterdayIfEligible()
	if rep.DisciplineAwarded {
		log.Info("discipline", "date", FormatDate(e.Yesterday()), "streak", e.CurrentStreak())
	}

	rep.BigGoals = e.SweepBigGoals()
	if rep.BigGoals.Changed() {
		log.Info("big goal sweep", "failed", rep.BigGoals.BigGoalsFailed, "xp_delta", rep.BigGoals.XPDelta)
	}

	changed := rep.Sweep.Changed() || rep.DisciplineAwarded || rep.BigGoals.Changed()
	if sess.rollover(ctx, log) {
		return
	}
	if changed {
		sess.persist(ctx)
	}
}

// rollover reports whether a year close was applied and saved. A local-only
// session holds a placeholder state, so the year stays open for the next run
// that can load the real one.
func (sess *Session) rollover(ctx context.Context, log *slog.Logger) bool {
	opts := sess.svc.opts
	if opts.Exporter == nil {
		return false
	}
	if sess.localOnly {
		log.Debug("rollover skipped, session is local-only")
		return false
	}
	r, err := sess.eng.PrepareRollover(opts.Rollover, opts.Exporter)
	if err != nil {
		log.Warn("rollover export failed", "err", err)
		sess.warn("the yearly report could not be produced (%v); your progress was not reset", err)
		return false
	}
	if r == nil {
		return false
	}

	reset, err := EncodeSnapshot(r.Reset)
	if err == nil {
		err = sess.svc.store.SaveRollover(ctx, sess.UserID, reset, r.Year, r.Report)
	}
	if err != nil {
		log.Warn("rollover save failed", "year", r.Year, "err", err)
		sess.warn("the %d report could not be saved (%v); the year will close on the next run", r.Year, err)
		return false
	}

	sess.eng.ApplyRollover(r)
	sess.Report = r.Report
	sess.Startup.RolloverYear = r.Year
	log.Info("rollover", "year", r.Year, "report_bytes", len(r.Report))
	sess.flushActivity(ctx)
	return true
}

func (sess *Session) warn(format string, args ...any) {
	sess.warnings = append(sess.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the non-fatal problems met so far.
func (sess *Session) Warnings() []string {
	return append([]string(nil), sess.warnings...)
}

// LocalOnly reports whether this session's changes are kept in memory only.
func (sess *Session) LocalOnly() bool { return sess.localOnly }

// Engine exposes the engine for read-only views. Mutations go through
// Mutate so they are persisted.
func (sess *Session) Engine() *Engine { return sess.eng }

// Mutate applies fn and persists the result. When fn fails nothing is
// saved. A save failure is not returned: the change stands in memory and
// a warning is recorded.
func (sess *Session) Mutate(ctx context.Context, fn func(*Engine) error) error {
	if err := fn(sess.eng); err != nil {
		return err
	}
	sess.persist(ctx)
	return nil
}

func (sess *Session) persist(ctx context.Context) {
	if sess.localOnly {
		sess.eng.DrainActivity()
		return
	}
	log := sess.svc.log.With("user", sess.UserID)
	if err := checkInvariants(sess.eng.State()); err != nil {
		log.Error("state invariants broken", "err", err)
	}
	data, err := EncodeSnapshot(sess.eng.State())
	if err == nil {
		err = sess.svc.store.SaveSnapshot(ctx, sess.UserID, data)
	}
	if err != nil {
		log.Warn("save state failed", "err", err)
		sess.warn("your change may not be saved: %v", err)
		return
	}
	sess.flushActivity(ctx)
}

func (sess *Session) flushActivity(ctx context.Context) {
	entries := sess.eng.DrainActivity()
	if len(entries) == 0 || sess.svc.opts.Activity == nil || sess.localOnly {
		return
	}
	if err := sess.svc.opts.Activity.Append(ctx, sess.UserID, entries); err != nil {
		sess.svc.log.Warn("activity append failed", "user", sess.UserID, "entries", len(entries), "err", err)
	}
}

// Notices consumes the one-shot level-up and yearly-report events and
// persists their removal. Zero values mean no event.
func (sess *Session) Notices(ctx context.Context) (levelUp, reportYear int) {
	_ = sess.Mutate(ctx, func(e *Engine) error {
		levelUp, _ = e.TakeLevelUp()
		reportYear, _ = e.TakeReportNotice()
		if levelUp == 0 && reportYear == 0 {
			return errNothingToSave
		}
		return nil
	})
	return levelUp, reportYear
}
