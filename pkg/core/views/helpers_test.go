package views

import (
	"time"

	"github.com/almas-industries/techplan/pkg/core/model"
)

var berlin = time.FixedZone("CET", 60*60)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, berlin)
}

func minutes(m int) *int {
	return &m
}

func appt(id, techID string, start time.Time, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID:           id,
		TechnicianID: techID,
		Date:         start,
		EndDate:      start.Add(time.Hour),
		Status:       status,
	}
}

func ids(appointments []model.Appointment) []string {
	out := make([]string, len(appointments))
	for i, a := range appointments {
		out[i] = a.ID
	}
	return out
}
