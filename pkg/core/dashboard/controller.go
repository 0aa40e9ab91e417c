// Package dashboard owns the live dashboard state and the workflow and refresh actions.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/core/model"
	"github.com/almas-industries/techplan/pkg/core/views"
	"github.com/almas-industries/techplan/pkg/store"
)

// ErrActionInProgress is returned when an action starts while another is still running
var ErrActionInProgress = errors.New("another action is in progress")

// Options tune the controller. Zero delays make actions complete immediately and
// a zero ActionTimeout disables the timeout.
type Options struct {
	Location      *time.Location
	Schedule      *rrule.ROption // nil keeps the nextRun supplied by the dataset
	ToggleDelay   time.Duration
	RefreshDelay  time.Duration
	ActionTimeout time.Duration
	RecentLimit   int
	Now           func() time.Time
}

// Controller owns the dashboard state. Presentation code only ever sees
// immutable State snapshots and changes state through ToggleWorkflow and Refresh.
type Controller struct {
	mu          sync.RWMutex
	store       *store.Memory
	workflow    model.WorkflowStatus
	warnings    []store.Warning
	refreshedAt time.Time

	busy   atomic.Bool
	source store.Source
	opts   Options
	logger *zap.Logger
}

// New ingests the first dataset from src. The dataset's workflow status seeds
// the controller; later refreshes only replace records.
func New(ctx context.Context, src store.Source, opts Options, logger *zap.Logger) (*Controller, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}

	ds, warnings, err := store.Ingest(ctx, src, opts.Location, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial dataset: %w", err)
	}

	c := &Controller{
		store:       store.NewMemory(ds),
		workflow:    ds.Workflow,
		warnings:    warnings,
		refreshedAt: opts.Now().In(opts.Location),
		source:      src,
		opts:        opts,
		logger:      logger,
	}

	logger.Info("Dashboard initialised",
		zap.Int("appointments", len(ds.Appointments)),
		zap.Int("technicians", len(ds.Technicians)),
		zap.Int("warnings", len(warnings)))

	return c, nil
}

// Busy reports whether an action is currently running
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Now returns the controller's current instant in the viewer's zone
func (c *Controller) Now() time.Time {
	return c.opts.Now().In(c.opts.Location)
}

// Snapshot returns a consistent read-only copy of the current state
func (c *Controller) Snapshot() State {
	now := c.Now()

	c.mu.RLock()
	ds := c.store.Snapshot()
	workflow := c.workflow
	warnings := append([]store.Warning{}, c.warnings...)
	refreshedAt := c.refreshedAt
	c.mu.RUnlock()

	workflow = views.WithLiveCounters(workflow, ds.Appointments)
	if next, ok := c.nextRun(now); ok {
		workflow.NextRun = &next
	}

	return State{
		Now:          now,
		Technicians:  ds.Technicians,
		Appointments: ds.Appointments,
		EmailQueue:   ds.EmailQueue,
		Workflow:     workflow,
		Warnings:     warnings,
		RefreshedAt:  refreshedAt,
		Busy:         c.Busy(),
		RecentLimit:  c.opts.RecentLimit,
	}
}

// Technician looks up a technician of the current dataset by id
func (c *Controller) Technician(id string) (model.Technician, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Technician(id)
}

// ToggleWorkflow starts or stops the planning workflow after the configured
// delay. Starting records the start time as the last run.
func (c *Controller) ToggleWorkflow(ctx context.Context) (model.WorkflowStatus, error) {
	if err := c.toggle(ctx); err != nil {
		return model.WorkflowStatus{}, err
	}
	return c.Snapshot().Workflow, nil
}

func (c *Controller) toggle(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	actionID := uuid.New().String()
	c.logger.Debug("Toggling workflow", zap.String("action_id", actionID))

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := wait(ctx, c.opts.ToggleDelay); err != nil {
		c.logger.Warn("Workflow toggle aborted", zap.String("action_id", actionID), zap.Error(err))
		return fmt.Errorf("failed to toggle workflow: %w", err)
	}

	c.mu.Lock()
	c.workflow.Running = !c.workflow.Running
	if c.workflow.Running {
		started := c.Now()
		c.workflow.LastRun = &started
	}
	running := c.workflow.Running
	c.mu.Unlock()

	c.logger.Info("Workflow toggled", zap.String("action_id", actionID), zap.Bool("running", running))
	return nil
}

// Refresh reloads the dataset from the source after the configured delay. On any
// failure the previous data stays in place. The returned state is taken after
// the action has released the busy flag.
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	if err := c.refresh(ctx); err != nil {
		return State{}, err
	}
	return c.Snapshot(), nil
}

func (c *Controller) refresh(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	actionID := uuid.New().String()
	c.logger.Debug("Refreshing dataset", zap.String("action_id", actionID))

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := wait(ctx, c.opts.RefreshDelay); err != nil {
		c.logger.Warn("Refresh aborted", zap.String("action_id", actionID), zap.Error(err))
		return fmt.Errorf("failed to refresh dataset: %w", err)
	}

	ds, warnings, err := store.Ingest(ctx, c.source, c.opts.Location, c.logger)
	if err != nil {
		c.logger.Error("Refresh failed, keeping previous data", zap.String("action_id", actionID), zap.Error(err))
		return fmt.Errorf("failed to refresh dataset: %w", err)
	}

	c.mu.Lock()
	c.store.Replace(ds)
	c.warnings = warnings
	c.refreshedAt = c.Now()
	c.mu.Unlock()

	c.logger.Info("Dataset refreshed",
		zap.String("action_id", actionID),
		zap.Int("appointments", len(ds.Appointments)),
		zap.Int("warnings", len(warnings)))
	return nil
}

func (c *Controller) begin() (func(), error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrActionInProgress
	}
	return func() { c.busy.Store(false) }, nil
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.ActionTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.ActionTimeout)
}

// nextRun finds the next scheduled run after now. Rules without DTSTART are
// anchored at midnight of now's day.
func (c *Controller) nextRun(now time.Time) (time.Time, bool) {
	if c.opts.Schedule == nil {
		return time.Time{}, false
	}

	opt := *c.opts.Schedule
	if opt.Dtstart.IsZero() {
		opt.Dtstart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		c.logger.Warn("Invalid workflow schedule", zap.Error(err))
		return time.Time{}, false
	}

	next := rule.After(now, false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
