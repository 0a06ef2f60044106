package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCannotReschedule возвращается, когда запись в статусе, не допускающем перенос
	ErrCannotReschedule = errors.New("appointment cannot be rescheduled")

	// ErrOutsideWorkingHours возвращается, когда новый интервал выходит
	// за рабочие часы сотрудника. Интервал отклоняется, а не обрезается.
	ErrOutsideWorkingHours = errors.New("proposed time is outside working hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается
	// с другой активной записью сотрудника
	ErrSlotConflict = errors.New("proposed time conflicts with another appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
