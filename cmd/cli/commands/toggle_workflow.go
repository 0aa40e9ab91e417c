package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/render"
)

// ToggleWorkflowCmd creates the toggleWorkflow command
func ToggleWorkflowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggleWorkflow",
		Short: "Start or stop the planning workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Dashboard.ToggleWorkflow(app.Ctx)
			if err != nil {
				return err
			}

			if status.Running {
				fmt.Fprintf(app.Out, "\n✓ Workflow started\n")
			} else {
				fmt.Fprintf(app.Out, "\n✓ Workflow stopped\n")
			}
			render.Workflow(app.Out, app.Style, status, false)

			return nil
		},
	}
}
