package domain

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a consultation booked by a client with a consultant
type Appointment struct {
	ID              int64
	ConsultantID    int64
	ClientID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized display data for history views
	ConsultantName string
	ClientName     string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the appointment interval.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// IsActive returns true if the appointment still occupies its interval.
// Only upcoming and confirmed appointments block a slot; completed ones are
// kept for history and cancelled ones release the interval immediately.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusUpcoming || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further transition is allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeConfirmed returns true if the appointment may move to confirmed.
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusUpcoming
}

// CanBeCompleted returns true if the appointment may move to completed.
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment may be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusUpcoming || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment may be moved to another
// slot. Rescheduling always resets the status to upcoming and is refused
// from terminal states.
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsTerminal()
}

// CanTransitionTo validates a direct status transition.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	switch target {
	case StatusConfirmed:
		return a.CanBeConfirmed()
	case StatusCompleted:
		return a.CanBeCompleted()
	case StatusCancelled:
		return a.CanBeCancelled()
	default:
		return false
	}
}

// ConsultantAppointmentsFilter фильтр для выборки встреч консультанта
type ConsultantAppointmentsFilter struct {
	ConsultantID    int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые встречи
}
