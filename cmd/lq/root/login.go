package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <user>",
		Short: "Sign in; progress is kept per user",
		Args:  exactArgs(1, "user"),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := sessionFile()
			if err != nil {
				return err
			}
			user := strings.TrimSpace(args[0])
			if err := files.Login(user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Signed in as"), user)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := sessionFile()
			if err != nil {
				return err
			}
			if err := files.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Signed out."))
			return nil
		},
	}
}
