package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				in := sess.Engine().Insights()
				out := cmd.OutOrStdout()

				fmt.Fprintln(out, ui.Heading(ui.IconChart, "Insights"))
				g := in.Goals
				fmt.Fprintln(out, ui.LabelValue("Goals", fmt.Sprintf("%d total, %d active, %d done, %d failed (%d missed)", g.Total, g.Active, g.Done, g.Failed, g.Overdue)))
				fmt.Fprintln(out, ui.LabelValue("By size", fmt.Sprintf("short %d · mid %d · long %d",
					g.BySize[engine.SizeShort], g.BySize[engine.SizeMid], g.BySize[engine.SizeLong])))
				b := in.BigGoals
				fmt.Fprintln(out, ui.LabelValue("Big goals", fmt.Sprintf("%d total, %d active, %d done, %d failed", b.Total, b.Active, b.Done, b.Failed)))
				fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s), best %d", in.CurrentStreak, in.BestStreak)))
				fmt.Fprintln(out, "")

				if len(in.Categories) > 0 {
					fmt.Fprintln(out, ui.H2.Render("Categories"))
					for _, c := range in.Categories {
						fmt.Fprintf(out, "- %-10s %5.1f%% %s\n", c.Category, c.Rate, ui.Muted.Render(fmt.Sprintf("(%d done, %d failed)", c.Done, c.Failed)))
					}
					fmt.Fprintln(out, "")
				}

				if len(in.Habits) > 0 {
					fmt.Fprintln(out, ui.H2.Render("Habits"))
					for _, h := range in.Habits {
						fmt.Fprintf(out, "- %-20s %5.1f%% %s\n", h.Title, h.Rate, ui.Muted.Render(fmt.Sprintf("(✓%d ✗%d)", h.Done, h.Failed)))
					}
					var days []string
					for i, rate := range in.HabitsByWeekday {
						days = append(days, fmt.Sprintf("%s %.0f%%", engine.WeekdayNames[i], rate))
					}
					fmt.Fprintln(out, ui.Muted.Render(strings.Join(days, " · ")))
					fmt.Fprintln(out, "")
				}

				fmt.Fprintln(out, ui.H2.Render("XP, last 7 days"))
				for _, d := range in.LastWeek {
					fmt.Fprintf(out, "- %s %s %s\n", engine.FormatDate(d.Date), engine.WeekdayNames[engine.Weekday(d.Date)], ui.XPDelta(d.XP))
				}
				fmt.Fprintln(out, ui.LabelValue("30-day average", fmt.Sprintf("%.1f XP/day", in.Average30)))
				var top []string
				for _, d := range in.Top3 {
					top = append(top, fmt.Sprintf("%s (%+d)", engine.FormatDate(d.Date), d.XP))
				}
				fmt.Fprintln(out, ui.LabelValue("Best days", strings.Join(top, ", ")))
				return nil
			})
		},
	}
}
