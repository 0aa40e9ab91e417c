package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almas-industries/techplan/pkg/core/model"
)

func TestMemory_PreservesOrderAndCopies(t *testing.T) {
	ds := DemoDataset(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	mem := NewMemory(ds)

	appointments := mem.Snapshot().Appointments
	require.Len(t, appointments, 4)
	assert.Equal(t, "1", appointments[0].ID)
	assert.Equal(t, "4", appointments[3].ID)

	// Mutating returned or source slices must not leak into the store
	appointments[0].Status = model.StatusCancelled
	ds.Appointments[1].Status = model.StatusCancelled
	fresh := mem.Snapshot().Appointments
	assert.Equal(t, model.StatusConfirmed, fresh[0].Status)
	assert.Equal(t, model.StatusBlocker, fresh[1].Status)
}

func TestMemory_TechnicianLookup(t *testing.T) {
	mem := NewMemory(DemoDataset(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)))

	tech, ok := mem.Technician("2")
	require.True(t, ok)
	assert.Equal(t, "Anna Schmidt", tech.Name)

	_, ok = mem.Technician("missing")
	assert.False(t, ok)
}

func TestMemory_Replace(t *testing.T) {
	mem := NewMemory(DemoDataset(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)))

	mem.Replace(&Dataset{
		Technicians: []model.Technician{{ID: "9", Name: "Nina Neu"}},
	})

	snapshot := mem.Snapshot()
	assert.Empty(t, snapshot.Appointments)
	assert.Empty(t, snapshot.EmailQueue)
	require.Len(t, snapshot.Technicians, 1)
	_, ok := mem.Technician("1")
	assert.False(t, ok)
	_, ok = mem.Technician("9")
	assert.True(t, ok)
}

func TestMemory_NilDataset(t *testing.T) {
	mem := NewMemory(nil)

	assert.Empty(t, mem.Snapshot().Appointments)
	assert.Empty(t, mem.Snapshot().Technicians)
	_, ok := mem.Technician("1")
	assert.False(t, ok)
}

func TestDataset_CloneIsDeep(t *testing.T) {
	ds := DemoDataset(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	clone := ds.Clone()

	*clone.Appointments[0].TravelTime = 999
	*clone.EmailQueue[0].SentAt = time.Time{}
	*clone.Workflow.LastRun = time.Time{}

	assert.Equal(t, 25, *ds.Appointments[0].TravelTime)
	assert.False(t, ds.EmailQueue[0].SentAt.IsZero())
	assert.False(t, ds.Workflow.LastRun.IsZero())
}

func TestMemory_SnapshotsDoNotShareTravelTime(t *testing.T) {
	mem := NewMemory(DemoDataset(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)))

	*mem.Snapshot().Appointments[0].TravelTime = 999

	assert.Equal(t, 25, mem.Snapshot().Appointments[0].TravelMinutes())
}
