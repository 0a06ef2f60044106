package scheduler

import "errors"

var (
	// ErrInvalidState возвращается при переходе, недопустимом из текущего
	// состояния (например, startDrag во время подтверждения переноса).
	// Это ошибка программирования вызывающей стороны, а не пользовательская
	ErrInvalidState = errors.New("scheduler: operation not allowed in current state")

	// ErrAppointmentNotFound возвращается, когда записи нет в состоянии доски
	ErrAppointmentNotFound = errors.New("scheduler: appointment not found on board")

	// ErrNotReschedulable возвращается при попытке перетащить запись
	// в статусе, не допускающем перенос
	ErrNotReschedulable = errors.New("scheduler: appointment cannot be rescheduled")

	// ErrNoPendingChange возвращается, когда подтверждать или отменять нечего
	ErrNoPendingChange = errors.New("scheduler: no pending change")
)
