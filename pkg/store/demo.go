package store

import (
	"context"
	"time"

	"github.com/almas-industries/techplan/pkg/core/model"
)

const demoSubject = "Terminvorschlag für Service"

// DemoSource serves the built-in demo dataset, with every timestamp placed
// relative to Now
type DemoSource struct {
	Now func() time.Time
}

func (s DemoSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return DemoDataset(now), nil
}

// DemoDataset builds three technicians, four appointments over the next two days
// and a small email queue around now
func DemoDataset(now time.Time) *Dataset {
	day := 24 * time.Hour
	travel := func(m int) *int { return &m }
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	technicians := []model.Technician{
		{ID: "1", Name: "Max Müller", Email: "max@almas.de", CalendarID: "cal1", Color: "#3B82F6"},
		{ID: "2", Name: "Anna Schmidt", Email: "anna@almas.de", CalendarID: "cal2", Color: "#10B981"},
		{ID: "3", Name: "Peter Weber", Email: "peter@almas.de", CalendarID: "cal3", Color: "#F59E0B"},
	}

	appointments := []model.Appointment{
		{
			ID:              "1",
			CustomerID:      "c1",
			CustomerName:    "Firma ABC GmbH",
			CustomerEmail:   "info@abc-gmbh.de",
			CustomerAddress: "Hauptstraße 1, 60311 Frankfurt",
			TechnicianID:    "1",
			TechnicianName:  "Max Müller",
			Date:            now.Add(day),
			EndDate:         now.Add(day + time.Hour),
			Status:          model.StatusConfirmed,
			TravelTime:      travel(25),
		},
		{
			ID:              "2",
			CustomerID:      "c2",
			CustomerName:    "XYZ Industries",
			CustomerEmail:   "kontakt@xyz.de",
			CustomerAddress: "Industriepark 5, 65929 Frankfurt",
			TechnicianID:    "1",
			TechnicianName:  "Max Müller",
			Date:            now.Add(day + 2*time.Hour),
			EndDate:         now.Add(day + 3*time.Hour),
			Status:          model.StatusBlocker,
			TravelTime:      travel(35),
		},
		{
			ID:              "3",
			CustomerID:      "c3",
			CustomerName:    "Tech Solutions AG",
			CustomerEmail:   "office@techsol.de",
			CustomerAddress: "Techpark 10, 64283 Darmstadt",
			TechnicianID:    "2",
			TechnicianName:  "Anna Schmidt",
			Date:            now.Add(2 * day),
			EndDate:         now.Add(2*day + time.Hour),
			Status:          model.StatusOpen,
			TravelTime:      travel(45),
		},
		{
			ID:              "4",
			CustomerID:      "c4",
			CustomerName:    "Global Services",
			CustomerEmail:   "service@global.de",
			CustomerAddress: "Messeturm 1, 60308 Frankfurt",
			TechnicianID:    "3",
			TechnicianName:  "Peter Weber",
			Date:            now.Add(day),
			EndDate:         now.Add(day + time.Hour),
			Status:          model.StatusCancelled,
			TravelTime:      travel(15),
		},
	}

	emailQueue := []model.EmailQueueItem{
		{ID: "e1", To: "info@abc-gmbh.de", Subject: demoSubject, Status: model.EmailSent, SentAt: ago(time.Hour)},
		{ID: "e2", To: "kontakt@xyz.de", Subject: demoSubject, Status: model.EmailSent, SentAt: ago(30 * time.Minute)},
		{ID: "e3", To: "office@techsol.de", Subject: demoSubject, Status: model.EmailPending},
	}

	nextRun := now.Add(time.Hour)
	workflow := model.WorkflowStatus{
		Running:               false,
		LastRun:               ago(time.Hour),
		NextRun:               &nextRun,
		AppointmentsPlanned:   4,
		AppointmentsConfirmed: 1,
		AppointmentsCancelled: 1,
	}

	return &Dataset{
		Technicians:  technicians,
		Appointments: appointments,
		EmailQueue:   emailQueue,
		Workflow:     workflow,
	}
}
