package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/render"
	"github.com/almas-industries/techplan/pkg/store"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset_file>",
		Short: "Check a YAML dataset file without loading it into the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("validate command", zap.String("path", path))

			loc := app.Style.Location
			if loc == nil {
				loc = time.Local
			}
			ds, warnings, err := store.Ingest(app.Ctx, store.FileSource{Path: path}, loc, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "\n✓ %s is valid: %d appointments, %d technicians, %d emails\n",
				path, len(ds.Appointments), len(ds.Technicians), len(ds.EmailQueue))
			render.Warnings(app.Out, app.Style, warnings)

			return nil
		},
	}
}
