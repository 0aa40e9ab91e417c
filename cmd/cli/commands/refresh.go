package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/render"
)

// RefreshCmd creates the refresh command
func RefreshCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the dataset from its source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.Dashboard.Refresh(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "\n✓ Dataset refreshed: %d appointments, %d technicians, %d emails\n",
				len(state.Appointments), len(state.Technicians), len(state.EmailQueue))
			render.Warnings(app.Out, app.Style, state.Warnings)

			return nil
		},
	}
}
