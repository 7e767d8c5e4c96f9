package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, stats, today and milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				st := e.State()
				out := cmd.OutOrStdout()

				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status · "+sess.UserID))
				if sess.LocalOnly() {
					fmt.Fprintln(out, ui.Warning("local-only session: changes will not be saved"))
				}
				fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
				fmt.Fprintln(out, ui.LabelValue("XP", ui.Number(st.XP)+" "+ui.LevelBar(st.XP, 20)))
				fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s), best %d", e.CurrentStreak(), e.BestStreak())))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render(ui.IconChart+" Stats"))
				for _, s := range engine.AllStats {
					fmt.Fprintf(out, "- %-18s %6.2f\n", ui.StatLabel(s), st.Stats[s])
				}
				fmt.Fprintln(out, "")

				today := e.Today()
				goals := e.GoalsDueOn(today)
				habits := e.HabitsOn(today)
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("📅 Today (%s)", engine.FormatDate(today))))
				if len(goals) == 0 && len(habits) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(nothing scheduled)"))
				}
				for _, g := range goals {
					printGoalLine(out, e, g)
				}
				for _, h := range habits {
					fmt.Fprintf(out, "- %s %s %s %s\n", ui.Muted.Render(engine.ShortID(h.ID)), ui.IconHabit, h.Title, ui.HabitMark(h.MarkOn(today)))
				}
				fmt.Fprintln(out, "")

				ms := e.Milestones()
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Milestones (%d/%d)", ui.IconTrophy, engine.CountEarned(ms), len(ms))))
				for _, m := range ms {
					if m.Earned {
						fmt.Fprintf(out, "- %s %s %s\n", m.Icon, ui.Good.Render(m.Name), ui.Muted.Render(m.Description))
					} else {
						fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render("🔒 "+m.Name), ui.Muted.Render(m.Description))
					}
				}
				return nil
			})
		},
	}

	return cmd
}
