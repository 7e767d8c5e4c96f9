package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/identity"
	"lifequest/internal/logging"
	"lifequest/internal/report"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

// app holds everything a command needs once config and the database are open.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	db       *sql.DB
	reports  *storage.ReportRepo
	activity *storage.ActivityRepo
	svc      *engine.Service
	who      identity.Provider
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func sessionFile() (*identity.FileProvider, error) {
	dir, err := config.HomeDir()
	if err != nil {
		return nil, err
	}
	return identity.NewFileProvider(filepath.Join(dir, "session.yaml")), nil
}

func openApp(ctx context.Context, cmd *cobra.Command) (*app, func(), error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	rollLoc, err := cfg.RolloverLocation()
	if err != nil {
		return nil, nil, err
	}
	files, err := sessionFile()
	if err != nil {
		return nil, nil, err
	}

	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("database open", "path", path)

	a := &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		reports:  storage.NewReportRepo(db),
		activity: storage.NewActivityRepo(db),
		who:      identity.Chain{files, identity.Static(cfg.User)},
	}
	a.svc = engine.NewService(storage.NewSnapshotRepo(db), engine.Options{
		Location: loc,
		Rollover: engine.RolloverPolicy{Location: rollLoc, CutoffHour: cfg.Rollover.CutoffHour},
		Exporter: report.Exporter{},
		Activity: a.activity,
		Logger:   log,
	})
	cleanup := func() {
		_ = db.Close()
	}
	return a, cleanup, nil
}

func (a *app) userID(ctx context.Context) (string, error) {
	id, ok, err := a.who.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: run `lq login <name>` or set LQ_USER", engine.ErrUnauthenticated)
	}
	return id, nil
}

// begin starts the user's session and reports what the startup passes did.
func (a *app) begin(ctx context.Context, cmd *cobra.Command) (*engine.Session, error) {
	id, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := a.svc.Begin(ctx, id)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	rep := sess.Startup
	if rep.Sweep.Changed() {
		fmt.Fprintf(out, "%s %d overdue goal(s) missed, %d penalties, %s\n",
			ui.Warn.Render(ui.IconClock+" Missed:"), rep.Sweep.GoalsFailed, rep.Sweep.Penalties, ui.XPDelta(rep.Sweep.XPDelta))
	}
	if rep.BigGoals.Changed() {
		fmt.Fprintf(out, "%s %d big goal(s) past due, %s\n",
			ui.Bad.Render(ui.IconBig+" Failed:"), rep.BigGoals.BigGoalsFailed, ui.XPDelta(rep.BigGoals.XPDelta))
	}
	if rep.DisciplineAwarded {
		fmt.Fprintf(out, "%s yesterday was a perfect day (+%.0f discipline)\n", ui.Good.Render(ui.IconFire+" Streak!"), engine.DisciplineBonus)
	}
	if rep.RolloverYear != 0 {
		a.saveYearReport(cmd, rep.RolloverYear, sess.Report)
	}
	return sess, nil
}

func (a *app) saveYearReport(cmd *cobra.Command, year int, data []byte) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d is closed. Progress was reset for the new year.\n", ui.Gold.Render(ui.IconTrophy+" Year complete:"), year)
	if a.cfg.ReportDir == "" {
		fmt.Fprintf(out, "%s\n", ui.Muted.Render(fmt.Sprintf("Fetch the report with `lq report get %d`.", year)))
		return
	}
	path := filepath.Join(a.cfg.ReportDir, report.FileName(year))
	if err := writeFile(path, data); err != nil {
		a.log.Warn("write year report failed", "path", path, "err", err)
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("could not write %s: %v", path, err)))
		return
	}
	fmt.Fprintln(out, ui.LabelValue("Report", path))
}

// finish prints warnings and consumes the one-shot notices.
func (a *app) finish(ctx context.Context, cmd *cobra.Command, sess *engine.Session) {
	levelUp, reportYear := sess.Notices(ctx)
	out := cmd.OutOrStdout()
	if levelUp != 0 {
		fmt.Fprintf(out, "%s %s you reached level %d\n", ui.IconSparkle, ui.BadgeLevelUp, levelUp)
	}
	if reportYear != 0 {
		fmt.Fprintf(out, "%s the %d yearly report is ready (`lq report get %d`)\n", ui.IconScroll, reportYear, reportYear)
	}
	for _, w := range sess.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(w))
	}
}

// withSession opens the app, begins a session, runs fn and finishes.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, a *app, sess *engine.Session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, cleanup, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := a.begin(ctx, cmd)
	if err != nil {
		return err
	}
	err = fn(ctx, a, sess)
	a.finish(ctx, cmd, sess)
	return err
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return errors.New("output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
