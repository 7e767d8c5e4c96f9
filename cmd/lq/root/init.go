package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/config"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

func newInitCmd() *cobra.Command {
	var force, printOnly bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and create the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if printOnly {
				cfg, _, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			path := configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.Write(path, force); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Config written"), path)

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dbPath, err := storage.ResolveDBPath(cfg.DBPath)
			if err != nil {
				return err
			}
			db, err := storage.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			_ = db.Close()
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Database ready"), dbPath)
			fmt.Fprintln(out, ui.Muted.Render("Next: lq login <name>"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the effective configuration instead")
	return cmd
}
