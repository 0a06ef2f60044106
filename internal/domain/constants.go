package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultPixelsPerHour          = 60
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxNotesLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих время на доске
// Используется при проверке конфликтов и подсчете доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих время на доске
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusWaiting,
	StatusInProgress,
	StatusCompleted,
}

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusWaiting,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
