package cli

import (
	"first20_backend/internal/app"
	"first20_backend/internal/config"

	"github.com/spf13/cobra"
)

func newJobsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run scheduled maintenance jobs by hand",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "auto-freeze",
		Short: "Spend streak freezes on yesterday for skills that missed it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			application.Scheduler.RunAutoFreeze()
			return nil
		},
	})

	return cmd
}
