package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"g"},
		Short:   "Create, close and list goals",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalOutcomeCmd("done", "Complete a goal", true),
		newGoalOutcomeCmd("fail", "Fail a goal", false),
		newGoalRmCmd(),
		newGoalListCmd(),
		newGoalMoveCmd(),
	)
	return cmd
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func newGoalAddCmd() *cobra.Command {
	var due, at, category, stat, repeat string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal; its size (short/mid/long) follows from the due date",
		Args:  exactArgs(1, "title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				dueDay, err := parseDay(due, e.Today())
				if err != nil {
					return err
				}
				s, err := engine.ParseStat(stat, engine.DefaultStat)
				if err != nil {
					return err
				}
				rec, err := engine.ParseRecurrence(repeat)
				if err != nil {
					return err
				}

				var g *engine.Goal
				err = sess.Mutate(ctx, func(e *engine.Engine) error {
					g, err = e.CreateGoal(engine.CreateGoalInput{
						Title:      strings.Join(args, " "),
						Due:        dueDay,
						DueTime:    at,
						Category:   category,
						Stat:       s,
						Recurrence: rec,
					})
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.Good.Render(ui.IconPlus+" Added"), ui.Muted.Render(engine.ShortID(g.ID)), g.Title, ui.SizeLabel(g.Size))
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Due", fmt.Sprintf("%s (%s)", engine.FormatDate(g.Due), engine.DaysLeftText(*g, e.Now()))))
				if g.Recurrence.IsRecurring() {
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Repeats", g.Recurrence.String()))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&due, "due", "today", "Due date (YYYY-MM-DD, today, tomorrow, +N)")
	cmd.Flags().StringVar(&at, "time", "", "Due time of day (HH:MM)")
	cmd.Flags().StringVarP(&category, "category", "c", engine.DefaultCategory, "Category ("+strings.Join(engine.Categories, ", ")+" or your own)")
	cmd.Flags().StringVarP(&stat, "stat", "s", string(engine.DefaultStat), "Stat the goal trains")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "none", "Repeat policy (none, daily, weekly or weekdays like mon,wed)")
	return cmd
}

func newGoalOutcomeCmd(use, short string, success bool) *cobra.Command {
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
						res, err = e.CompleteGoal(args[0])
					} else {
						res, err = e.FailGoal(args[0])
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

func printOutcome(out io.Writer, res *engine.OutcomeResult, success bool) {
	label := ui.Good.Render(ui.IconDone + " Done")
	if !success {
		label = ui.Bad.Render(ui.IconFailed + " Failed")
	}
	fmt.Fprintf(out, "%s %s %s\n", label, res.Title, ui.XPDelta(res.XPDelta))
	if res.Advanced {
		fmt.Fprintln(out, ui.LabelValue("Next due", engine.FormatDate(res.NextDue)))
	}
	if res.LevelBefore != res.LevelAfter {
		fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
}

func newGoalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a goal without any XP effect",
		Args:    exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				var g engine.Goal
				err := sess.Mutate(ctx, func(e *engine.Engine) error {
					var err error
					g, err = e.DeleteGoal(args[0])
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconTrash+" Deleted"), g.Title)
				return nil
			})
		},
	}
}

func newGoalListCmd() *cobra.Command {
	var size, category, status, on string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals by size, category, status or day",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := engine.GoalFilter{
				Size:     engine.SizeClass(strings.ToLower(size)),
				Category: category,
				Status:   engine.GoalStatus(strings.ToLower(status)),
			}
			if f.Size != "" && !f.Size.IsValid() {
				return engine.InvalidInputError{Field: "size", Reason: "want short, mid or long"}
			}
			if !f.Status.IsValid() {
				return engine.InvalidInputError{Field: "status", Reason: "want all, active, done or failed"}
			}
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				if on != "" {
					d, err := parseDay(on, e.Today())
					if err != nil {
						return err
					}
					f.On = &d
				}
				goals := e.ListGoals(f)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconGoal, fmt.Sprintf("Goals (%d)", len(goals))))
				if len(goals) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
					return nil
				}
				for _, g := range goals {
					printGoalLine(out, e, g)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "Only short, mid or long goals")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().StringVar(&status, "status", string(engine.StatusActive), "all, active, done or failed")
	cmd.Flags().StringVar(&on, "on", "", "Only goals due on this day")
	return cmd
}

func printGoalLine(out io.Writer, e *engine.Engine, g engine.Goal) {
	when := engine.FormatDate(g.Due)
	if g.DueTime != "" {
		when += " " + g.DueTime
	}
	extra := ""
	if !g.Closed() {
		extra = " · " + engine.DaysLeftText(g, e.Now())
	}
	if g.Recurrence.IsRecurring() {
		extra += " · " + ui.IconHabit + " " + g.Recurrence.String()
	}
	fmt.Fprintf(out, "- %s %s %s [%s] %s %s\n",
		ui.Muted.Render(engine.ShortID(g.ID)), g.Title, ui.SizeLabel(g.Size),
		g.Category, ui.GoalStatus(g), ui.Muted.Render(when+extra))
}

func newGoalMoveCmd() *cobra.Command {
	var due, at string

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Reschedule an open goal; its size is recalculated",
		Args:  exactArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				d, err := parseDay(due, e.Today())
				if err != nil {
					return err
				}
				var g *engine.Goal
				err = sess.Mutate(ctx, func(e *engine.Engine) error {
					g, err = e.RescheduleGoal(args[0], d, at)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s %s\n",
					ui.H2.Render(ui.IconClock+" Moved"), g.Title, engine.FormatDate(g.Due), ui.SizeLabel(g.Size))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, today, tomorrow, +N)")
	cmd.Flags().StringVar(&at, "time", "", "New due time (HH:MM); empty clears it")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}
