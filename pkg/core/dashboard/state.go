package dashboard

import (
	"time"

	"github.com/almas-industries/techplan/pkg/core/model"
	"github.com/almas-industries/techplan/pkg/core/views"
	"github.com/almas-industries/techplan/pkg/store"
)

// State is an immutable snapshot handed to presentation code
type State struct {
	Now          time.Time
	Technicians  []model.Technician
	Appointments []model.Appointment
	EmailQueue   []model.EmailQueueItem
	Workflow     model.WorkflowStatus
	Warnings     []store.Warning
	RefreshedAt  time.Time
	Busy         bool
	RecentLimit  int
}

// Overview is the data behind the overview tab
type Overview struct {
	Counts   views.StatusCounts   `json:"counts"`
	Workflow model.WorkflowStatus `json:"workflow"`
	Recent   []model.Appointment  `json:"recent"`
	Busy     bool                 `json:"busy"`
}

func (s State) Overview() Overview {
	return Overview{
		Counts:   views.CountStatuses(s.Appointments),
		Workflow: s.Workflow,
		Recent:   views.RecentAppointments(s.Appointments, s.RecentLimit),
		Busy:     s.Busy,
	}
}

// Week builds the grid for the week containing day. A zero day means today.
// TodayIndex always refers to the snapshot's current day.
func (s State) Week(day time.Time) views.WeekGrid {
	if day.IsZero() {
		day = s.Now
	}
	grid := views.BuildWeekGrid(day.In(s.Now.Location()), s.Technicians, s.Appointments)
	grid.TodayIndex = views.DayIndex(grid.Days, s.Now)
	return grid
}

func (s State) TechnicianCards() []views.TechnicianSummary {
	return views.SummarizeTechnicians(s.Technicians, s.Now, s.Appointments)
}

func (s State) Emails() views.EmailPartition {
	return views.PartitionEmails(s.EmailQueue)
}
