package views

import "github.com/almas-industries/techplan/pkg/core/model"

// StatusCounts holds the overview tallies for a set of appointments
type StatusCounts struct {
	Total            int `json:"total"`
	Confirmed        int `json:"confirmed"`
	PendingOrBlocked int `json:"pendingOrBlocked"`
	Cancelled        int `json:"cancelled"`
}

// CountStatuses buckets appointments by status. The three status buckets are
// disjoint and sum to Total for validated input.
func CountStatuses(appointments []model.Appointment) StatusCounts {
	counts := StatusCounts{Total: len(appointments)}
	for _, a := range appointments {
		switch {
		case a.Status == model.StatusConfirmed:
			counts.Confirmed++
		case a.Status.IsPending():
			counts.PendingOrBlocked++
		case a.Status == model.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// WithLiveCounters returns a copy of status whose counters are recomputed from
// the appointment list instead of trusting the stored values
func WithLiveCounters(status model.WorkflowStatus, appointments []model.Appointment) model.WorkflowStatus {
	counts := CountStatuses(appointments)
	status.AppointmentsPlanned = counts.Total
	status.AppointmentsConfirmed = counts.Confirmed
	status.AppointmentsCancelled = counts.Cancelled
	return status
}

// RecentAppointments returns at most limit appointments in input order
func RecentAppointments(appointments []model.Appointment, limit int) []model.Appointment {
	if limit <= 0 {
		return []model.Appointment{}
	}
	if limit > len(appointments) {
		limit = len(appointments)
	}
	recent := make([]model.Appointment, limit)
	copy(recent, appointments[:limit])
	return recent
}
