package commands

import (
	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/render"
)

// EmailsCmd creates the emails command
func EmailsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "emails",
		Short: "Show the email queue grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render.EmailQueue(app.Out, app.Style, app.Dashboard.Snapshot().Emails())
			return nil
		},
	}
}
