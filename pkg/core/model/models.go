package model

import "time"

type AppointmentStatus string

const (
	StatusOpen      AppointmentStatus = "open"
	StatusBlocker   AppointmentStatus = "blocker"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusBlocker, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// IsPending reports whether the appointment still needs a decision (open or blocker)
func (s AppointmentStatus) IsPending() bool {
	return s == StatusOpen || s == StatusBlocker
}

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

func (s EmailStatus) IsValid() bool {
	return s == EmailPending || s == EmailSent || s == EmailFailed
}

// Technician represents a field worker who can be assigned appointments
type Technician struct {
	ID         string `yaml:"id" json:"id" validate:"required"`
	Name       string `yaml:"name" json:"name" validate:"required"`
	Email      string `yaml:"email" json:"email" validate:"omitempty,email"`
	CalendarID string `yaml:"calendarId" json:"calendarId"`
	Color      string `yaml:"color" json:"color" validate:"omitempty,hexcolor"`
}

// Appointment represents a scheduled customer visit
type Appointment struct {
	ID              string            `yaml:"id" json:"id" validate:"required"`
	CustomerID      string            `yaml:"customerId" json:"customerId"`
	CustomerName    string            `yaml:"customerName" json:"customerName"`
	CustomerEmail   string            `yaml:"customerEmail" json:"customerEmail" validate:"omitempty,email"`
	CustomerAddress string            `yaml:"customerAddress" json:"customerAddress"`
	TechnicianID    string            `yaml:"technicianId" json:"technicianId" validate:"required"`
	TechnicianName  string            `yaml:"technicianName" json:"technicianName"` // Denormalised copy
	Date            time.Time         `yaml:"date" json:"date" validate:"required"`
	EndDate         time.Time         `yaml:"endDate" json:"endDate" validate:"required,gtefield=Date"`
	Status          AppointmentStatus `yaml:"status" json:"status" validate:"required,oneof=open blocker confirmed cancelled"`
	TravelTime      *int              `yaml:"travelTime,omitempty" json:"travelTime,omitempty" validate:"omitempty,min=0"` // Minutes, nil if unknown
}

// TravelMinutes returns the travel time, treating a missing value as zero
func (a Appointment) TravelMinutes() int {
	if a.TravelTime == nil {
		return 0
	}
	return *a.TravelTime
}

// EmailQueueItem represents an outbound notification email
type EmailQueueItem struct {
	ID      string      `yaml:"id" json:"id" validate:"required"`
	To      string      `yaml:"to" json:"to" validate:"required,email"`
	Subject string      `yaml:"subject" json:"subject"`
	Status  EmailStatus `yaml:"status" json:"status" validate:"required,oneof=pending sent failed"`
	SentAt  *time.Time  `yaml:"sentAt,omitempty" json:"sentAt,omitempty" validate:"required_if=Status sent"`
	Error   string      `yaml:"error,omitempty" json:"error,omitempty" validate:"required_if=Status failed"`
}

// WorkflowStatus is a snapshot of the planning workflow
type WorkflowStatus struct {
	Running               bool       `yaml:"running" json:"running"`
	LastRun               *time.Time `yaml:"lastRun,omitempty" json:"lastRun,omitempty"`
	NextRun               *time.Time `yaml:"nextRun,omitempty" json:"nextRun,omitempty"`
	AppointmentsPlanned   int        `yaml:"appointmentsPlanned" json:"appointmentsPlanned"`
	AppointmentsConfirmed int        `yaml:"appointmentsConfirmed" json:"appointmentsConfirmed"`
	AppointmentsCancelled int        `yaml:"appointmentsCancelled" json:"appointmentsCancelled"`
}
