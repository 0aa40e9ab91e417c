package commands

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/almas-industries/techplan/internal/config"
	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/render"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Dashboard *dashboard.Controller
	Logger    *zap.Logger
	Ctx       context.Context
	Out       io.Writer
	Style     render.Style
}
