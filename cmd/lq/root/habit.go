package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"h"},
		Short:   "Track weekly habits",
	}
	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitMarkCmd("done", "Mark a habit done for a day", true),
		newHabitMarkCmd("fail", "Mark a habit failed for a day", false),
		newHabitRmCmd(),
		newHabitListCmd(),
	)
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var days, stat string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit scheduled on some weekdays",
		Args:  exactArgs(1, "title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekdays, err := engine.ParseWeekdays(days)
			if err != nil {
				return err
			}
			s, err := engine.ParseStat(stat, engine.StatDiscipline)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				var h *engine.Habit
				err := sess.Mutate(ctx, func(e *engine.Engine) error {
					var err error
					h, err = e.CreateHabit(engine.CreateHabitInput{Title: args[0], Weekdays: weekdays, Stat: s})
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.Good.Render(ui.IconPlus+" Added"), ui.Muted.Render(engine.ShortID(h.ID)), h.Title,
					ui.Muted.Render(engine.FormatWeekdays(h.Weekdays)+" · "+ui.StatLabel(h.Stat)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&days, "days", "d", "all", "Weekdays (mon,wed,fri, weekdays, weekend or all)")
	cmd.Flags().StringVarP(&stat, "stat", "s", string(engine.StatDiscipline), "Stat the habit trains")
	return cmd
}

func newHabitMarkCmd(use, short string, success bool) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Long:  short + ". Marking the other side for the same day first undoes the earlier mark.",
		Args:  exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				d, err := parseDay(on, sess.Engine().Today())
				if err != nil {
					return err
				}
				var res *engine.OutcomeResult
				err = sess.Mutate(ctx, func(e *engine.Engine) error {
					if success {
						res, err = e.MarkHabitDone(args[0], d)
					} else {
						res, err = e.MarkHabitFailed(args[0], d)
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

	cmd.Flags().StringVar(&on, "on", "today", "Day to mark")
	return cmd
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit and its history",
		Args:    exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				var h engine.Habit
				err := sess.Mutate(ctx, func(e *engine.Engine) error {
					var err error
					h, err = e.DeleteHabit(args[0])
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconTrash+" Deleted"), h.Title)
				return nil
			})
		},
	}
}

func newHabitListCmd() *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with today's mark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				day := e.Today()
				habits := e.ListHabits()
				if today {
					habits = e.HabitsOn(day)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconHabit, fmt.Sprintf("Habits (%d)", len(habits))))
				if len(habits) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
					return nil
				}
				for _, h := range habits {
					mark := ui.Muted.Render("not today")
					if engine.IsScheduled(&h, day) {
						mark = ui.HabitMark(h.MarkOn(day))
					}
					fmt.Fprintf(out, "- %s %s %s %s %s\n",
						ui.Muted.Render(engine.ShortID(h.ID)), h.Title, mark,
						ui.Muted.Render(strings.ToLower(engine.FormatWeekdays(h.Weekdays))),
						ui.Muted.Render(fmt.Sprintf("✓%d ✗%d", len(h.Completions), len(h.Failures))))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&today, "today", "t", false, "Only habits scheduled today")
	return cmd
}
