package root

import (
	"context"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open today's board (d: done, f: fail, q: quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ *app, sess *engine.Session) error {
				return tui.RunBoard(ctx, sess, cmd.OutOrStdout())
			})
		},
	}

	return cmd
}
