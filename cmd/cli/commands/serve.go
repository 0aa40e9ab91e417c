package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/almas-industries/techplan/pkg/server"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard as a JSON API for the browser front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			cfg := app.Cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}

			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(app.Dashboard, cfg, app.Logger).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides server.addr from the config")

	return cmd
}
