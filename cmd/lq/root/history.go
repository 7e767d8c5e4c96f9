package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP-affecting activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess *engine.Session) error {
				entries, err := a.activity.ListRecent(ctx, sess.UserID, kind, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
				if len(entries) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(no activity yet)"))
					return nil
				}
				loc := sess.Engine().Location()
				for _, en := range entries {
					fmt.Fprintf(out, "- %s %-18s %s %s\n",
						ui.Muted.Render(en.At.In(loc).Format("2006-01-02 15:04")), en.Kind, en.Title, ui.XPDelta(en.XPDelta))
				}
				if counts, err := a.activity.CountByKind(ctx, sess.UserID); err == nil {
					fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d goals completed, %d failed, %d missed in total",
						counts[string(engine.ActivityGoalCompleted)], counts[string(engine.ActivityGoalFailed)], counts[string(engine.ActivityGoalMissed)])))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only one kind (e.g. goal_completed, habit_done)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "How many entries")
	return cmd
}
