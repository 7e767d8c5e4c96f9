package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/report"
	"lifequest/internal/ui"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Yearly xlsx reports",
	}
	cmd.AddCommand(newReportGetCmd(), newReportExportCmd(), newReportListCmd())
	return cmd
}

func newReportGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <year>",
		Short: "Save a stored yearly report",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := exactArgs(1, "year")(cmd, args); err != nil {
				return err
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return engine.InvalidInputError{Field: "year", Reason: "must be a number"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := strconv.Atoi(args[0])
			return withSession(cmd, func(ctx context.Context, a *app, sess *engine.Session) error {
				rep, err := a.reports.Get(ctx, sess.UserID, year)
				if err != nil {
					return err
				}
				if rep == nil {
					return engine.NotFoundError{Kind: "report", ID: args[0]}
				}
				path := output
				if path == "" {
					path = report.FileName(year)
				}
				if err := writeFile(path, rep.Data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Saved"), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default year_report_<year>.xlsx)")
	return cmd
}

func newReportExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current year so far, without closing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				e := sess.Engine()
				year := e.Today().Year()
				data, err := report.Exporter{}.Export(e.State().Clone(), year)
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = report.FileName(year)
				}
				if err := writeFile(path, data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Exported"), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func newReportListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored yearly reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess *engine.Session) error {
				infos, err := a.reports.List(ctx, sess.UserID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(infos) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(no yearly reports yet)"))
					return nil
				}
				for _, in := range infos {
					fmt.Fprintf(out, "- %d %s\n", in.Year, ui.Muted.Render(fmt.Sprintf("%d bytes, %s", in.Size, in.CreatedAt.Format("2006-01-02"))))
				}
				return nil
			})
		},
	}
}
