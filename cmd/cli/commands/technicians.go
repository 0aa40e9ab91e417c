package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/core/views"
	"github.com/almas-industries/techplan/pkg/render"
)

// TechniciansCmd creates the technicians command
func TechniciansCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "technicians [technician_id]",
		Short: "Show technician cards with today's route and the next appointment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Dashboard.Snapshot()

			if len(args) == 0 {
				render.Technicians(app.Out, app.Style, state.TechnicianCards())
				return nil
			}

			tech, ok := app.Dashboard.Technician(args[0])
			if !ok {
				return fmt.Errorf("technician not found: %s", args[0])
			}
			render.TechnicianCard(app.Out, app.Style, views.SummarizeTechnician(tech, state.Now, state.Appointments))
			return nil
		},
	}
}
