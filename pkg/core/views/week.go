package views

import (
	"sort"
	"time"

	"github.com/almas-industries/techplan/pkg/core/model"
)

const (
	// FirstGridHour is the first hour row shown in the week grid (08:00)
	FirstGridHour = 8
	// GridHourCount is the number of hour rows (08:00 to 17:00 inclusive)
	GridHourCount = 10
	// WorkdayCount is the number of day columns (Monday to Friday)
	WorkdayCount = 5
)

// GridHours returns the hour rows of the week grid: 8 through 17
func GridHours() []int {
	hours := make([]int, GridHourCount)
	for i := range hours {
		hours[i] = FirstGridHour + i
	}
	return hours
}

// InGridHours reports whether hour has a row in the week grid
func InGridHours(hour int) bool {
	return hour >= FirstGridHour && hour < FirstGridHour+GridHourCount
}

// StartOfWeek returns midnight of the Monday of today's week. A Sunday belongs
// to the week that started six days earlier.
func StartOfWeek(today time.Time) time.Time {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	// Days since Monday, with Sunday (0) mapping to 6
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns midnight of Monday through Friday of today's week
func WeekDays(today time.Time) [WorkdayCount]time.Time {
	var days [WorkdayCount]time.Time
	monday := StartOfWeek(today)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// SlotLookup returns the appointment occupying a (technician, day, hour) slot.
// Cancelled appointments still occupy their slot. The grid assumes at most one
// appointment per slot; when that is violated the earliest start (then lowest
// id) wins and SlotCollisions reports the clash.
func SlotLookup(technicianID string, day time.Time, hour int, appointments []model.Appointment) (model.Appointment, bool) {
	var match model.Appointment
	found := false
	if !InGridHours(hour) {
		return match, false
	}
	for _, a := range appointments {
		if !inSlot(a, technicianID, day, hour) {
			continue
		}
		if !found || startsBefore(a, match) {
			match = a
			found = true
		}
	}
	return match, found
}

// SlotCollision describes two or more appointments landing in one grid slot
type SlotCollision struct {
	TechnicianID   string    `json:"technicianId"`
	Day            time.Time `json:"day"`
	Hour           int       `json:"hour"`
	AppointmentIDs []string  `json:"appointmentIds"`
}

// SlotCollisions finds every grid slot holding more than one appointment, using
// loc for calendar days and hours. Results are ordered by day, hour, technician.
func SlotCollisions(loc *time.Location, appointments []model.Appointment) []SlotCollision {
	type slotKey struct {
		technicianID string
		date         string
		hour         int
	}

	slots := make(map[slotKey][]model.Appointment)
	var keys []slotKey
	for _, a := range appointments {
		start := a.Date.In(loc)
		if !InGridHours(start.Hour()) {
			continue
		}
		key := slotKey{
			technicianID: a.TechnicianID,
			date:         start.Format("2006-01-02"),
			hour:         start.Hour(),
		}
		if _, seen := slots[key]; !seen {
			keys = append(keys, key)
		}
		slots[key] = append(slots[key], a)
	}

	collisions := []SlotCollision{}
	for _, key := range keys {
		occupants := slots[key]
		if len(occupants) < 2 {
			continue
		}
		sort.SliceStable(occupants, func(i, j int) bool { return startsBefore(occupants[i], occupants[j]) })
		ids := make([]string, len(occupants))
		for i, a := range occupants {
			ids[i] = a.ID
		}
		start := occupants[0].Date.In(loc)
		collisions = append(collisions, SlotCollision{
			TechnicianID:   key.technicianID,
			Day:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
			Hour:           key.hour,
			AppointmentIDs: ids,
		})
	}

	sort.SliceStable(collisions, func(i, j int) bool {
		a, b := collisions[i], collisions[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.TechnicianID < b.TechnicianID
	})

	return collisions
}

// GridCell is one (day, hour) cell of a technician's row
type GridCell struct {
	Day         time.Time          `json:"day"`
	Hour        int                `json:"hour"`
	Appointment *model.Appointment `json:"appointment,omitempty"`
}

// GridRow holds a technician's cells indexed as Cells[hourIndex][dayIndex]
type GridRow struct {
	Technician model.Technician `json:"technician"`
	Cells      [][]GridCell     `json:"cells"`
}

// WeekGrid is the fully derived weekly calendar
type WeekGrid struct {
	Year       int                     `json:"year"`
	Week       int                     `json:"week"` // ISO 8601 week number
	Days       [WorkdayCount]time.Time `json:"days"`
	Hours      []int                   `json:"hours"`
	TodayIndex int                     `json:"todayIndex"` // -1 when today is a weekend day
	Rows       []GridRow               `json:"rows"`
	Collisions []SlotCollision         `json:"collisions"`
}

// BuildWeekGrid lays out the Monday to Friday grid of today's week
func BuildWeekGrid(today time.Time, techs []model.Technician, appointments []model.Appointment) WeekGrid {
	days := WeekDays(today)
	hours := GridHours()
	year, week := days[0].ISOWeek()

	grid := WeekGrid{
		Year:       year,
		Week:       week,
		Days:       days,
		Hours:      hours,
		TodayIndex: DayIndex(days, today),
		Rows:       make([]GridRow, 0, len(techs)),
		Collisions: []SlotCollision{},
	}

	for _, tech := range techs {
		row := GridRow{Technician: tech, Cells: make([][]GridCell, len(hours))}
		for h, hour := range hours {
			row.Cells[h] = make([]GridCell, len(days))
			for d, day := range days {
				cell := GridCell{Day: day, Hour: hour}
				if a, ok := SlotLookup(tech.ID, day, hour, appointments); ok {
					cell.Appointment = &a
				}
				row.Cells[h][d] = cell
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	weekEnd := days[WorkdayCount-1].AddDate(0, 0, 1)
	for _, c := range SlotCollisions(today.Location(), appointments) {
		if !c.Day.Before(days[0]) && c.Day.Before(weekEnd) {
			grid.Collisions = append(grid.Collisions, c)
		}
	}

	return grid
}

// DayIndex returns the position of t's calendar day within days, or -1
func DayIndex(days [WorkdayCount]time.Time, t time.Time) int {
	for i, day := range days {
		if sameCalendarDay(t, day) {
			return i
		}
	}
	return -1
}

func inSlot(a model.Appointment, technicianID string, day time.Time, hour int) bool {
	if a.TechnicianID != technicianID {
		return false
	}
	return sameCalendarDay(a.Date, day) && a.Date.In(day.Location()).Hour() == hour
}
