package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/core/model"
	"github.com/almas-industries/techplan/pkg/store"
)

var fixedNow = time.Date(2026, 10, 14, 10, 17, 0, 0, time.UTC)

// swapSource serves whatever dataset or error it currently holds
type swapSource struct {
	mu  sync.Mutex
	ds  *store.Dataset
	err error
}

func (s *swapSource) Load(ctx context.Context) (*store.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.ds.Clone(), nil
}

func (s *swapSource) set(ds *store.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
	s.err = err
}

func newTestController(t *testing.T, opts Options) (*Controller, *swapSource) {
	t.Helper()
	src := &swapSource{ds: store.DemoDataset(fixedNow)}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	c, err := New(context.Background(), src, opts, zap.NewNop())
	require.NoError(t, err)
	return c, src
}

func TestNew_InitialLoadFailure(t *testing.T) {
	src := &swapSource{err: errors.New("disk gone")}

	_, err := New(context.Background(), src, Options{}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load initial dataset")
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSnapshot_LiveCountersOverrideStale(t *testing.T) {
	ds := store.DemoDataset(fixedNow)
	ds.Workflow.AppointmentsPlanned = 99
	ds.Workflow.AppointmentsConfirmed = 42
	ds.Workflow.AppointmentsCancelled = 7
	src := &swapSource{ds: ds}

	c, err := New(context.Background(), src, Options{Location: time.UTC, Now: func() time.Time { return fixedNow }}, zap.NewNop())
	require.NoError(t, err)

	state := c.Snapshot()
	assert.Equal(t, 4, state.Workflow.AppointmentsPlanned)
	assert.Equal(t, 1, state.Workflow.AppointmentsConfirmed)
	assert.Equal(t, 1, state.Workflow.AppointmentsCancelled)
	assert.Equal(t, fixedNow, state.Now)
	assert.False(t, state.Busy)
}

func TestSnapshot_IsIsolatedCopy(t *testing.T) {
	c, _ := newTestController(t, Options{})

	first := c.Snapshot()
	first.Appointments[0].Status = model.StatusCancelled
	first.Technicians[0].Name = "changed"

	second := c.Snapshot()
	assert.Equal(t, model.StatusConfirmed, second.Appointments[0].Status)
	assert.NotEqual(t, "changed", second.Technicians[0].Name)
}

func TestSnapshot_NextRunFromSchedule(t *testing.T) {
	opt, err := rrule.StrToROption("FREQ=HOURLY;BYMINUTE=0;BYSECOND=0")
	require.NoError(t, err)

	c, _ := newTestController(t, Options{Schedule: opt})

	next := c.Snapshot().Workflow.NextRun
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2026, 10, 14, 11, 0, 0, 0, time.UTC), *next)
}

func TestSnapshot_NextRunFromDatasetWithoutSchedule(t *testing.T) {
	c, _ := newTestController(t, Options{})

	next := c.Snapshot().Workflow.NextRun
	require.NotNil(t, next)
	assert.Equal(t, fixedNow.Add(time.Hour), *next)
}

func TestSnapshot_ExhaustedScheduleKeepsDatasetValue(t *testing.T) {
	opt := &rrule.ROption{Freq: rrule.DAILY, Count: 1, Dtstart: time.Date(2020, 1, 1, 6, 0, 0, 0, time.UTC)}

	c, _ := newTestController(t, Options{Schedule: opt})

	next := c.Snapshot().Workflow.NextRun
	require.NotNil(t, next)
	assert.Equal(t, fixedNow.Add(time.Hour), *next)
}

func TestToggleWorkflow_StartAndStop(t *testing.T) {
	c, _ := newTestController(t, Options{})
	lastRunBefore := c.Snapshot().Workflow.LastRun

	status, err := c.ToggleWorkflow(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
	require.NotNil(t, status.LastRun)
	assert.Equal(t, fixedNow, *status.LastRun)
	assert.NotEqual(t, *lastRunBefore, *status.LastRun)

	status, err = c.ToggleWorkflow(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, fixedNow, *status.LastRun)
}

func TestToggleWorkflow_Cancelled(t *testing.T) {
	c, _ := newTestController(t, Options{ToggleDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ToggleWorkflow(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.Snapshot().Workflow.Running)
	assert.False(t, c.Busy())
}

func TestToggleWorkflow_Timeout(t *testing.T) {
	c, _ := newTestController(t, Options{ToggleDelay: time.Minute, ActionTimeout: 10 * time.Millisecond})

	_, err := c.ToggleWorkflow(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, c.Snapshot().Workflow.Running)
}

func TestActions_RejectConcurrentAction(t *testing.T) {
	c, _ := newTestController(t, Options{ToggleDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.ToggleWorkflow(ctx)
		done <- err
	}()

	require.Eventually(t, c.Busy, time.Second, time.Millisecond)
	assert.True(t, c.Snapshot().Busy)

	_, err := c.ToggleWorkflow(context.Background())
	assert.ErrorIs(t, err, ErrActionInProgress)

	_, err = c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrActionInProgress)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, c.Busy())
}

func TestRefresh_ReplacesData(t *testing.T) {
	c, src := newTestController(t, Options{})

	next := store.DemoDataset(fixedNow)
	next.Appointments = next.Appointments[:1]
	src.set(next, nil)

	state, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Appointments, 1)
	assert.Equal(t, 1, state.Workflow.AppointmentsPlanned)
	assert.Len(t, c.Snapshot().Appointments, 1)
}

func TestActions_ResultIsNotBusy(t *testing.T) {
	c, _ := newTestController(t, Options{ToggleDelay: time.Millisecond, RefreshDelay: time.Millisecond})

	_, err := c.ToggleWorkflow(context.Background())
	require.NoError(t, err)
	assert.False(t, c.Snapshot().Busy)

	state, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Busy)
	assert.False(t, state.Overview().Busy)
	assert.False(t, c.Busy())
}

func TestTechnician_Lookup(t *testing.T) {
	c, src := newTestController(t, Options{})

	tech, ok := c.Technician("2")
	require.True(t, ok)
	assert.Equal(t, "Anna Schmidt", tech.Name)

	_, ok = c.Technician("99")
	assert.False(t, ok)

	next := store.DemoDataset(fixedNow)
	next.Technicians = next.Technicians[:1]
	src.set(next, nil)
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	_, ok = c.Technician("2")
	assert.False(t, ok)
}

func TestRefresh_KeepsWorkflowState(t *testing.T) {
	c, _ := newTestController(t, Options{})

	_, err := c.ToggleWorkflow(context.Background())
	require.NoError(t, err)

	_, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, c.Snapshot().Workflow.Running)
}

func TestRefresh_FailureKeepsPreviousData(t *testing.T) {
	c, src := newTestController(t, Options{})
	before := c.Snapshot()

	src.set(nil, errors.New("upstream unavailable"))

	_, err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")

	after := c.Snapshot()
	assert.Equal(t, before.Appointments, after.Appointments)
	assert.Equal(t, before.RefreshedAt, after.RefreshedAt)
}

func TestRefresh_InvalidDatasetKeepsPreviousData(t *testing.T) {
	c, src := newTestController(t, Options{})

	bad := store.DemoDataset(fixedNow)
	bad.Appointments[0].Status = "unknown"
	src.set(bad, nil)

	_, err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidDataset)
	assert.Len(t, c.Snapshot().Appointments, 4)
}

func TestRefresh_CollectsWarnings(t *testing.T) {
	c, src := newTestController(t, Options{})

	next := store.DemoDataset(fixedNow)
	next.Appointments[0].TechnicianID = "ghost"
	src.set(next, nil)

	state, err := c.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Warnings, 1)
	assert.Equal(t, store.WarningDanglingTechnician, state.Warnings[0].Kind)
}
