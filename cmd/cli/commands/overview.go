package commands

import (
	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/render"
)

// OverviewCmd creates the overview command
func OverviewCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show appointment counters, the workflow status and recent appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("overview command")

			state := app.Dashboard.Snapshot()
			render.Overview(app.Out, app.Style, state.Overview())
			render.Warnings(app.Out, app.Style, state.Warnings)

			return nil
		},
	}
}
