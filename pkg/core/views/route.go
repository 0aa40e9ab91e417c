package views

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/almas-industries/techplan/pkg/core/model"
)

// TodayRoute returns the technician's non-cancelled appointments on now's
// calendar day. Input order is preserved, so a time-ordered input gives a
// time-ordered route.
func TodayRoute(technicianID string, now time.Time, appointments []model.Appointment) []model.Appointment {
	route := []model.Appointment{}
	for _, a := range appointments {
		if a.TechnicianID != technicianID || a.Status == model.StatusCancelled {
			continue
		}
		if sameCalendarDay(a.Date, now) {
			route = append(route, a)
		}
	}
	return route
}

// TotalTravelTime sums travel minutes over a route, counting missing values as 0
func TotalTravelTime(route []model.Appointment) int {
	total := 0
	for _, a := range route {
		total += a.TravelMinutes()
	}
	return total
}

// NextAppointment returns the technician's earliest non-cancelled appointment
// starting strictly after now. Equal start times are ordered by id.
func NextAppointment(technicianID string, now time.Time, appointments []model.Appointment) (model.Appointment, bool) {
	var next model.Appointment
	found := false
	for _, a := range appointments {
		if a.TechnicianID != technicianID || a.Status == model.StatusCancelled {
			continue
		}
		if !a.Date.After(now) {
			continue
		}
		if !found || startsBefore(a, next) {
			next = a
			found = true
		}
	}
	return next, found
}

// TechnicianSummary is everything a technician card shows
type TechnicianSummary struct {
	Technician    model.Technician    `json:"technician"`
	Initials      string              `json:"initials"`
	Route         []model.Appointment `json:"route"`
	TravelMinutes int                 `json:"travelMinutes"`
	Next          *model.Appointment  `json:"next,omitempty"`
	Confirmed     int                 `json:"confirmed"`
	Pending       int                 `json:"pending"`
}

// SummarizeTechnician derives the card for one technician. Appointments of other
// technicians are ignored, and an unknown technician simply gets an empty card.
func SummarizeTechnician(tech model.Technician, now time.Time, appointments []model.Appointment) TechnicianSummary {
	route := TodayRoute(tech.ID, now, appointments)
	summary := TechnicianSummary{
		Technician:    tech,
		Initials:      Initials(tech.Name),
		Route:         route,
		TravelMinutes: TotalTravelTime(route),
	}

	if next, ok := NextAppointment(tech.ID, now, appointments); ok {
		summary.Next = &next
	}

	for _, a := range appointments {
		if a.TechnicianID != tech.ID {
			continue
		}
		switch {
		case a.Status == model.StatusConfirmed:
			summary.Confirmed++
		case a.Status.IsPending():
			summary.Pending++
		}
	}

	return summary
}

// SummarizeTechnicians derives one card per technician, in technician order
func SummarizeTechnicians(techs []model.Technician, now time.Time, appointments []model.Appointment) []TechnicianSummary {
	summaries := make([]TechnicianSummary, 0, len(techs))
	for _, tech := range techs {
		summaries = append(summaries, SummarizeTechnician(tech, now, appointments))
	}
	return summaries
}

// Initials returns the first letter of every word in name
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// sameCalendarDay reports whether t falls on ref's calendar day in ref's zone
func sameCalendarDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// startsBefore orders appointments by start time, then id
func startsBefore(a, b model.Appointment) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.ID < b.ID
}
