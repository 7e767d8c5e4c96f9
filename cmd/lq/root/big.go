package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newBigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "big",
		Short: "Big goals: 250 XP and +10 to every stat",
	}
	cmd.AddCommand(
		newBigAddCmd(),
		newBigOutcomeCmd("done", "Complete a big goal", true),
		newBigOutcomeCmd("fail", "Fail a big goal", false),
		newBigRmCmd(),
		newBigListCmd(),
	)
	return cmd
}

func newBigAddCmd() *cobra.Command {
	var due, note string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a big goal",
		Args:  exactArgs(1, "title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				d, err := parseDay(due, sess.Engine().Today())
				if err != nil {
					return err
				}
				var b *engine.BigGoal
				err = sess.Mutate(ctx, func(e *engine.Engine) error {
					b, err = e.CreateBigGoal(engine.CreateBigGoalInput{Title: args[0], Due: d, Note: note})
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.Good.Render(ui.IconPlus+" Added"), ui.Muted.Render(engine.ShortID(b.ID)), b.Title,
					ui.Muted.Render("due "+engine.FormatDate(b.Due)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or +N)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newBigOutcomeCmd(use, short string, success bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				var res *engine.OutcomeResult
				err := sess.Mutate(ctx, func(e *engine.Engine) error {
					var err error
					if success {
						res, err = e.CompleteBigGoal(args[0])
					} else {
						res, err = e.FailBigGoal(args[0])
					}
					return err
				})
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), res, success)
				return nil
			})
		},
	}
}

func newBigRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a big goal without any XP effect",
		Args:    exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				var b engine.BigGoal
				err := sess.Mutate(ctx, func(e *engine.Engine) error {
					var err error
					b, err = e.DeleteBigGoal(args[0])
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconTrash+" Deleted"), b.Title)
				return nil
			})
		},
	}
}

func newBigListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List big goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := engine.GoalStatus(strings.ToLower(status))
			if !st.IsValid() {
				return engine.InvalidInputError{Field: "status", Reason: "want all, active, done or failed"}
			}
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				list := e.ListBigGoals(st)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconBig, fmt.Sprintf("Big goals (%d)", len(list))))
				if len(list) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
					return nil
				}
				for _, b := range list {
					left := engine.DaysBetween(e.Today(), b.Due)
					fmt.Fprintf(out, "- %s %s %s %s\n",
						ui.Muted.Render(engine.ShortID(b.ID)), b.Title, ui.BigGoalStatus(b),
						ui.Muted.Render(fmt.Sprintf("due %s (%d days)", engine.FormatDate(b.Due), left)))
					if b.Note != "" {
						fmt.Fprintf(out, "  %s\n", ui.Muted.Render(b.Note))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(engine.StatusActive), "all, active, done or failed")
	return cmd
}
