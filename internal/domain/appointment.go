package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusWaiting    AppointmentStatus = "waiting"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a customer appointment with an employee
type Appointment struct {
	ID              int64
	EmployeeID      int64
	CustomerID      int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	ServiceIDs      []int64

	// Denormalized data for display and history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// IsActive returns true if the appointment still occupies time on the board.
// Cancelled and no-show appointments free their slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeRescheduled returns true if the appointment may be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	switch a.Status {
	case StatusScheduled, StatusConfirmed, StatusWaiting:
		return true
	default:
		return false
	}
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IntervalsOverlap reports whether two half-open intervals [aStart, aEnd)
// and [bStart, bEnd) overlap. Touching endpoints do not overlap: an
// appointment ending at 10:00 does not conflict with one starting at 10:00.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// EmployeeAppointmentsFilter фильтр для выборки записей сотрудников
type EmployeeAppointmentsFilter struct {
	EmployeeIDs     []int64    // Обязательный параметр - хотя бы один сотрудник
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *AppointmentStatus
	IncludeInactive bool // Включать ли отмененные и no-show записи
}
