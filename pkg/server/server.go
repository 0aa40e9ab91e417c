// Package server exposes the dashboard as a JSON API for the browser front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/internal/config"
	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/core/model"
)

const shutdownTimeout = 5 * time.Second

// Dashboard is the part of the controller the API needs
type Dashboard interface {
	Snapshot() dashboard.State
	ToggleWorkflow(ctx context.Context) (model.WorkflowStatus, error)
	Refresh(ctx context.Context) (dashboard.State, error)
}

// Server serves the dashboard API
type Server struct {
	dash   Dashboard
	cfg    config.ServerConfig
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the gin engine with recovery, request logging, CORS and routes
func New(dash Dashboard, cfg config.ServerConfig, logger *zap.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{dash: dash, cfg: cfg, logger: logger, engine: engine}
	s.registerRoutes(newActionLimiter(cfg.ActionsPerMinute, logger))
	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard API listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes(limit gin.HandlerFunc) {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/overview", s.overview)
		api.GET("/week", s.week)
		api.GET("/technicians", s.technicians)
		api.GET("/emails", s.emails)
	}

	actions := api.Group("", limit)
	{
		actions.POST("/workflow/toggle", s.toggleWorkflow)
		actions.POST("/refresh", s.refresh)
	}
}
