// Package render prints dashboard views as plain text tables for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/almas-industries/techplan/pkg/core/dashboard"
	"github.com/almas-industries/techplan/pkg/core/model"
	"github.com/almas-industries/techplan/pkg/core/views"
	"github.com/almas-industries/techplan/pkg/store"
)

const (
	statusColWidth   = 11
	customerColWidth = 24
	techColWidth     = 16
	slotColWidth     = 16
	hourColWidth     = 7
)

// Overview prints the status counters, the workflow panel and the recent appointments
func Overview(w io.Writer, s Style, ov dashboard.Overview) {
	fmt.Fprintf(w, "\n%s\n\n", s.paint(colorBold, "Overview"))

	fmt.Fprintf(w, "  Total:            %d\n", ov.Counts.Total)
	fmt.Fprintf(w, "  Confirmed:        %s\n", s.paint(colorGreen, fmt.Sprint(ov.Counts.Confirmed)))
	fmt.Fprintf(w, "  Pending/Blocked:  %s\n", s.paint(colorYellow, fmt.Sprint(ov.Counts.PendingOrBlocked)))
	fmt.Fprintf(w, "  Cancelled:        %s\n", s.paint(colorRed, fmt.Sprint(ov.Counts.Cancelled)))

	Workflow(w, s, ov.Workflow, ov.Busy)

	fmt.Fprintf(w, "\n%s\n", s.paint(colorBold, "Recent appointments"))
	if len(ov.Recent) == 0 {
		fmt.Fprintln(w, s.paint(colorDim, "  No appointments"))
		return
	}
	appointmentTable(w, s, ov.Recent)
}

// Workflow prints the workflow panel
func Workflow(w io.Writer, s Style, wf model.WorkflowStatus, busy bool) {
	state := s.paint(colorDim, "stopped")
	if wf.Running {
		state = s.paint(colorGreen, "running")
	}
	if busy {
		state += s.paint(colorYellow, " (action in progress)")
	}

	fmt.Fprintf(w, "\n%s\n", s.paint(colorBold, "Workflow"))
	fmt.Fprintf(w, "  State:     %s\n", state)
	fmt.Fprintf(w, "  Last run:  %s\n", s.dateTime(wf.LastRun))
	fmt.Fprintf(w, "  Next run:  %s\n", s.dateTime(wf.NextRun))
	fmt.Fprintf(w, "  Planned %d, confirmed %d, cancelled %d\n",
		wf.AppointmentsPlanned, wf.AppointmentsConfirmed, wf.AppointmentsCancelled)
}

func appointmentTable(w io.Writer, s Style, appointments []model.Appointment) {
	fmt.Fprintf(w, "  %-*s%-*s%-*s%s\n",
		statusColWidth, "Status",
		customerColWidth, "Customer",
		techColWidth, "Technician",
		"Date")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", statusColWidth+customerColWidth+techColWidth+len(dateTimeLayout)))

	for _, a := range appointments {
		start := a.Date
		fmt.Fprintf(w, "  %s%-*s%-*s%s\n",
			s.tone(views.AppointmentTone(a.Status), statusColWidth, string(a.Status)),
			customerColWidth, truncate(a.CustomerName, customerColWidth-1),
			techColWidth, truncate(a.TechnicianName, techColWidth-1),
			s.dateTime(&start))
	}
}

// Week prints the Monday to Friday grid, one block of hour rows per technician
func Week(w io.Writer, s Style, grid views.WeekGrid) {
	fmt.Fprintf(w, "\n%s\n\n", s.paint(colorBold, fmt.Sprintf("Week %d/%d", grid.Week, grid.Year)))

	if len(grid.Rows) == 0 {
		fmt.Fprintln(w, s.paint(colorDim, "  No technicians"))
	}

	for _, row := range grid.Rows {
		fmt.Fprintf(w, "%s\n", s.paint(colorBold, row.Technician.Name))

		fmt.Fprintf(w, "%-*s", hourColWidth, "")
		for d, day := range grid.Days {
			label := day.Format(dayLayout)
			if d == grid.TodayIndex {
				fmt.Fprint(w, s.padPaint(colorBlue, slotColWidth, label+" *"))
				continue
			}
			fmt.Fprintf(w, "%-*s", slotColWidth, label)
		}
		fmt.Fprintln(w)

		for h, hour := range grid.Hours {
			fmt.Fprintf(w, "%-*s", hourColWidth, fmt.Sprintf("%02d:00", hour))
			for _, cell := range row.Cells[h] {
				if cell.Appointment == nil {
					fmt.Fprint(w, s.padPaint(colorDim, slotColWidth, "."))
					continue
				}
				fmt.Fprint(w, s.tone(views.AppointmentTone(cell.Appointment.Status), slotColWidth,
					truncate(cell.Appointment.CustomerName, slotColWidth-1)))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	for _, c := range grid.Collisions {
		fmt.Fprintln(w, s.paint(colorYellow, fmt.Sprintf("  overlap: technician %s at %s %02d:00 has %d appointments (%s)",
			c.TechnicianID, c.Day.Format(dayLayout), c.Hour, len(c.AppointmentIDs), strings.Join(c.AppointmentIDs, ", "))))
	}
}

// TechnicianCard prints one technician with today's route and the next appointment
func TechnicianCard(w io.Writer, s Style, card views.TechnicianSummary) {
	fmt.Fprintf(w, "\n%s %s\n", s.paint(colorBold, "["+card.Initials+"]"), s.paint(colorBold, card.Technician.Name))
	if card.Technician.Email != "" {
		fmt.Fprintf(w, "  %s\n", s.paint(colorDim, card.Technician.Email))
	}
	fmt.Fprintf(w, "  Confirmed %d, pending %d\n", card.Confirmed, card.Pending)

	if card.Next != nil {
		start := card.Next.Date
		fmt.Fprintf(w, "  Next: %s at %s\n", card.Next.CustomerName, s.dateTime(&start))
	} else {
		fmt.Fprintf(w, "  Next: %s\n", Placeholder)
	}

	if len(card.Route) == 0 {
		fmt.Fprintln(w, s.paint(colorDim, "  No appointments today"))
		return
	}

	fmt.Fprintf(w, "  Today (%d min travel):\n", card.TravelMinutes)
	for _, a := range card.Route {
		fmt.Fprintf(w, "    %s-%s  %s%-*s%s\n",
			s.clock(a.Date), s.clock(a.EndDate),
			s.tone(views.AppointmentTone(a.Status), statusColWidth, string(a.Status)),
			customerColWidth, truncate(a.CustomerName, customerColWidth-1),
			a.CustomerAddress)
	}
}

// Technicians prints every technician card
func Technicians(w io.Writer, s Style, cards []views.TechnicianSummary) {
	if len(cards) == 0 {
		fmt.Fprintln(w, s.paint(colorDim, "No technicians"))
		return
	}
	for _, card := range cards {
		TechnicianCard(w, s, card)
	}
}

// EmailQueue prints the three email partitions
func EmailQueue(w io.Writer, s Style, part views.EmailPartition) {
	sections := []struct {
		title string
		items []model.EmailQueueItem
	}{
		{"Pending", part.Pending},
		{"Sent", part.Sent},
		{"Failed", part.Failed},
	}

	for _, section := range sections {
		fmt.Fprintf(w, "\n%s (%d)\n", s.paint(colorBold, section.title), len(section.items))
		for _, item := range section.items {
			fmt.Fprintf(w, "  %s%-*s%s\n",
				s.tone(views.EmailTone(item.Status), statusColWidth-2, string(item.Status)),
				customerColWidth+4, truncate(item.To, customerColWidth+3),
				s.dateTime(item.SentAt))
			if item.Subject != "" {
				fmt.Fprintf(w, "    %s\n", item.Subject)
			}
			if item.Error != "" {
				fmt.Fprintf(w, "    %s\n", s.paint(colorRed, item.Error))
			}
		}
	}
}

// Warnings prints the data problems found during the last ingestion
func Warnings(w io.Writer, s Style, warnings []store.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", s.paint(colorYellow, fmt.Sprintf("%d data warning(s):", len(warnings))))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  [%s] %s\n", warning.Kind, warning.Message)
	}
}
