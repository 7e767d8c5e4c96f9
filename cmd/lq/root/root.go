package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

const Version = "0.1.0"

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lq",
		Short:         "Lifequest: level up your life from the terminal",
		Long:          "Lifequest turns goals, habits and big goals into XP, levels and six life stats.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.lifequest/config.yaml)")

	cmd.AddCommand(
		newInitCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newGoalCmd(),
		newHabitCmd(),
		newBigCmd(),
		newBoardCmd(),
		newReportCmd(),
		newHistoryCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
