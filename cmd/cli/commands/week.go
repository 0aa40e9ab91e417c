package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/render"
)

// WeekCmd creates the week command
func WeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the Monday to Friday calendar grid of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			app.Logger.Debug("week command", zap.String("date", date))

			state := app.Dashboard.Snapshot()

			var day time.Time
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, state.Now.Location())
				if err != nil {
					return fmt.Errorf("date must be formatted as YYYY-MM-DD, got: %s", date)
				}
				day = parsed
			}

			render.Week(app.Out, app.Style, state.Week(day))
			return nil
		},
	}

	cmd.Flags().String("date", "", "Any day of the week to show (YYYY-MM-DD, defaults to today)")

	return cmd
}
