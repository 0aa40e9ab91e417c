package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/internal/config"
	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/render"
	"github.com/almas-industries/techplan/pkg/store"
)

var fixedNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*AppContext, *bytes.Buffer) {
	t.Helper()
	now := func() time.Time { return fixedNow }
	ctrl, err := dashboard.New(context.Background(), store.DemoSource{Now: now},
		dashboard.Options{Location: time.UTC, Now: now}, zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	return &AppContext{
		Cfg:       config.Default(),
		Dashboard: ctrl,
		Logger:    zap.NewNop(),
		Ctx:       context.Background(),
		Out:       &out,
		Style:     render.Style{Location: time.UTC},
	}, &out
}

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestOverviewCmd(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, OverviewCmd(app)))

	assert.Contains(t, out.String(), "Total:            4")
	assert.Contains(t, out.String(), "Firma ABC GmbH")
}

func TestWeekCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
		wantErr  bool
	}{
		{"current week", nil, "Week 42/2026", false},
		{"explicit date", []string{"--date", "2026-10-21"}, "Week 43/2026", false},
		{"bad date", []string{"--date", "21.10.2026"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t)

			err := run(t, WeekCmd(app), tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "YYYY-MM-DD")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.expected)
		})
	}
}

func TestTechniciansCmd(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, TechniciansCmd(app)))
	assert.Contains(t, out.String(), "[MM] Max Müller")
	assert.Contains(t, out.String(), "[AS] Anna Schmidt")

	out.Reset()
	require.NoError(t, run(t, TechniciansCmd(app), "2"))
	assert.Contains(t, out.String(), "Anna Schmidt")
	assert.NotContains(t, out.String(), "Max Müller")

	err := run(t, TechniciansCmd(app), "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "technician not found: 99")
}

func TestEmailsCmd(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, EmailsCmd(app)))

	assert.Contains(t, out.String(), "Pending (1)")
	assert.Contains(t, out.String(), "Sent (2)")
	assert.Contains(t, out.String(), "Failed (0)")
}

func TestToggleWorkflowCmd(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, ToggleWorkflowCmd(app)))
	assert.Contains(t, out.String(), "Workflow started")
	assert.True(t, app.Dashboard.Snapshot().Workflow.Running)

	out.Reset()
	require.NoError(t, run(t, ToggleWorkflowCmd(app)))
	assert.Contains(t, out.String(), "Workflow stopped")
}

func TestRefreshCmd(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, RefreshCmd(app)))

	assert.Contains(t, out.String(), "Dataset refreshed: 4 appointments, 3 technicians, 3 emails")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`technicians:
  - id: "1"
    name: Max Müller
appointments:
  - id: a1
    technicianId: "1"
    date: 2026-10-14T09:00:00Z
    endDate: 2026-10-14T10:00:00Z
    status: confirmed
  - id: a2
    technicianId: "7"
    date: 2026-10-14T11:00:00Z
    endDate: 2026-10-14T12:00:00Z
    status: open
`), 0644))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`appointments:
  - id: a1
    technicianId: "1"
    date: 2026-10-14T09:00:00Z
    endDate: 2026-10-14T08:00:00Z
    status: maybe
`), 0644))

	t.Run("valid with warnings", func(t *testing.T) {
		app, out := newTestApp(t)

		require.NoError(t, run(t, ValidateCmd(app), valid))
		assert.Contains(t, out.String(), "is valid: 2 appointments, 1 technicians, 0 emails")
		assert.Contains(t, out.String(), "1 data warning(s):")
		assert.Contains(t, out.String(), "dangling_technician")
	})

	t.Run("invalid", func(t *testing.T) {
		app, _ := newTestApp(t)

		err := run(t, ValidateCmd(app), invalid)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidDataset)
		assert.Contains(t, err.Error(), "maybe")
	})

	t.Run("missing file", func(t *testing.T) {
		app, _ := newTestApp(t)

		err := run(t, ValidateCmd(app), filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read dataset file")
	})
}

func TestInteractiveCmd(t *testing.T) {
	app, out := newTestApp(t)

	root := &cobra.Command{Use: "techplan"}
	root.AddCommand(OverviewCmd(app), WeekCmd(app), ToggleWorkflowCmd(app), ServeCmd(app))
	interactive := InteractiveCmd(app)
	root.AddCommand(interactive)

	interactive.SetIn(strings.NewReader(strings.Join([]string{
		"help",
		"toggleWorkflow",
		"week --date 2026-10-21",
		"week",
		"serve",
		`week "unclosed`,
		"exit",
		"overview",
	}, "\n")))

	require.NoError(t, run(t, root, "interactive"))

	output := out.String()
	assert.Contains(t, output, "Available commands:")
	assert.Less(t, strings.Index(output, "overview"), strings.Index(output, "toggleWorkflow"))
	assert.Contains(t, output, "Workflow started")
	assert.Contains(t, output, "Week 43/2026")
	// flags reset between runs
	assert.Contains(t, output, "Week 42/2026")
	assert.Contains(t, output, "Unknown command: serve")
	assert.Contains(t, output, "unclosed quote")
	assert.Contains(t, output, "Goodbye!")
	assert.NotContains(t, output, "Total:")
	assert.True(t, app.Dashboard.Snapshot().Workflow.Running)
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"simple", "week --date 2026-10-14", []string{"week", "--date", "2026-10-14"}, false},
		{"extra spaces", "  technicians   2 ", []string{"technicians", "2"}, false},
		{"double quotes", `validate "my data.yaml"`, []string{"validate", "my data.yaml"}, false},
		{"single quotes", `validate 'my data.yaml'`, []string{"validate", "my data.yaml"}, false},
		{"nested quote", `validate "it's.yaml"`, []string{"validate", "it's.yaml"}, false},
		{"empty quotes", `technicians ""`, []string{"technicians", ""}, false},
		{"adjacent quote", `a"b c"d`, []string{"ab cd"}, false},
		{"unclosed", `validate "data.yaml`, nil, true},
		{"unclosed after multibyte", `validate 'Müller`, nil, true},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}
