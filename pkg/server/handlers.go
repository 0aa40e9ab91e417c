package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/store"
)

const dateLayout = "2006-01-02"

type overviewResponse struct {
	dashboard.Overview
	Warnings    []store.Warning `json:"warnings"`
	RefreshedAt time.Time       `json:"refreshedAt"`
}

func newOverviewResponse(state dashboard.State) overviewResponse {
	warnings := state.Warnings
	if warnings == nil {
		warnings = []store.Warning{}
	}
	return overviewResponse{
		Overview:    state.Overview(),
		Warnings:    warnings,
		RefreshedAt: state.RefreshedAt,
	}
}

func (s *Server) overview(c *gin.Context) {
	c.JSON(http.StatusOK, newOverviewResponse(s.dash.Snapshot()))
}

// week serves the grid for ?date=YYYY-MM-DD, defaulting to today
func (s *Server) week(c *gin.Context) {
	state := s.dash.Snapshot()

	var day time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, state.Now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	c.JSON(http.StatusOK, state.Week(day))
}

func (s *Server) technicians(c *gin.Context) {
	c.JSON(http.StatusOK, s.dash.Snapshot().TechnicianCards())
}

func (s *Server) emails(c *gin.Context) {
	c.JSON(http.StatusOK, s.dash.Snapshot().Emails())
}

func (s *Server) toggleWorkflow(c *gin.Context) {
	status, err := s.dash.ToggleWorkflow(c.Request.Context())
	if err != nil {
		s.actionError(c, "toggle workflow", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) refresh(c *gin.Context) {
	state, err := s.dash.Refresh(c.Request.Context())
	if err != nil {
		s.actionError(c, "refresh", err)
		return
	}
	c.JSON(http.StatusOK, newOverviewResponse(state))
}

func (s *Server) actionError(c *gin.Context, action string, err error) {
	status := statusFor(err)
	s.logger.Warn("Action failed", zap.String("action", action), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps action errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrActionInProgress):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, store.ErrInvalidDataset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
