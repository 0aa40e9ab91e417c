package store

import (
	"context"

	"github.com/almas-industries/techplan/pkg/core/model"
)

// Dataset is everything the dashboard shows, as delivered by a source
type Dataset struct {
	Technicians  []model.Technician     `yaml:"technicians" json:"technicians" validate:"dive"`
	Appointments []model.Appointment    `yaml:"appointments" json:"appointments" validate:"dive"`
	EmailQueue   []model.EmailQueueItem `yaml:"emailQueue" json:"emailQueue" validate:"dive"`
	Workflow     model.WorkflowStatus   `yaml:"workflow" json:"workflow"`
}

// Source produces datasets. Implementations must return a fresh Dataset on every
// call so callers may keep it without copying.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Clone returns a deep copy that can be modified independently of d
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return &Dataset{}
	}

	clone := &Dataset{
		Technicians:  append([]model.Technician(nil), d.Technicians...),
		Appointments: append([]model.Appointment(nil), d.Appointments...),
		EmailQueue:   append([]model.EmailQueueItem(nil), d.EmailQueue...),
		Workflow:     d.Workflow,
	}
	for i := range clone.Appointments {
		clone.Appointments[i].TravelTime = clonePtr(clone.Appointments[i].TravelTime)
	}
	for i := range clone.EmailQueue {
		clone.EmailQueue[i].SentAt = clonePtr(clone.EmailQueue[i].SentAt)
	}
	clone.Workflow.LastRun = clonePtr(d.Workflow.LastRun)
	clone.Workflow.NextRun = clonePtr(d.Workflow.NextRun)

	return clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
