package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/cmd/cli/commands"
	"github.com/almas-industries/techplan/internal/config"
	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/render"
	"github.com/almas-industries/techplan/pkg/store"
	"github.com/almas-industries/techplan/pkg/utils/logging"
)

var (
	env       string
	noColor   bool
	verbose   bool
	closeLogs func() error
	app       = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "techplan",
		Short: "Techplan - technician scheduling dashboard",
		Long:  `A CLI for inspecting technician schedules, routes, the planning workflow and the notification email queue.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if closeLogs != nil {
				closeLogs()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: demo, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.OverviewCmd(app))
	rootCmd.AddCommand(commands.WeekCmd(app))
	rootCmd.AddCommand(commands.TechniciansCmd(app))
	rootCmd.AddCommand(commands.EmailsCmd(app))
	rootCmd.AddCommand(commands.ToggleWorkflowCmd(app))
	rootCmd.AddCommand(commands.RefreshCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the dashboard controller
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Out = os.Stdout

	app.Logger, closeLogs, err = logging.InitLogger(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	loc, err := app.Cfg.Location()
	if err != nil {
		return err
	}
	schedule, err := app.Cfg.Schedule()
	if err != nil {
		return err
	}

	_, noColorEnv := os.LookupEnv("NO_COLOR")
	app.Style = render.Style{Color: !noColor && !noColorEnv, Location: loc}

	var src store.Source = store.DemoSource{Now: time.Now}
	if app.Cfg.DatasetPath != "" {
		app.Logger.Debug("Using dataset file", zap.String("path", app.Cfg.DatasetPath))
		src = store.FileSource{Path: app.Cfg.DatasetPath}
	}

	app.Dashboard, err = dashboard.New(app.Ctx, src, dashboard.Options{
		Location:      loc,
		Schedule:      schedule,
		ToggleDelay:   app.Cfg.ToggleDelay,
		RefreshDelay:  app.Cfg.RefreshDelay,
		ActionTimeout: app.Cfg.ActionTimeout,
		RecentLimit:   app.Cfg.RecentLimit,
	}, app.Logger)
	if err != nil {
		return err
	}

	return nil
}
