package cli

import (
	"first20_backend/internal/app"
	"first20_backend/internal/config"

	"github.com/spf13/cobra"
)

type options struct {
	configDir string
}

// NewRootCmd creates the "first20" command. Without a subcommand it serves
// the API.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "first20",
		Short:         "First 20 Hours API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, false)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configDir, "config", "c", "configs", "directory containing config.yaml")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newPlanCmd(),
		newJobsCmd(opts),
	)

	return root
}

func newServeCmd(opts *options) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, migrate)
		},
	}
	// release 模式下默认不迁移
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations on start even in release mode")
	return cmd
}

func runServe(opts *options, migrate bool) error {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return err
	}
	cfg.ForceMigrate = migrate

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	return application.Run(config.ConfigFile(opts.configDir))
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations, seed the badge catalog and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			cfg.ForceMigrate = true
			cfg.MigrateOnly = true

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := application.DB.DB(); err == nil {
				defer sqlDB.Close()
			}
			cmd.Println("数据库迁移完成")
			return nil
		},
	}
}
