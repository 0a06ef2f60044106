package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := types.NewTimeStringFromString(req.StartTime.String()); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	return nil
}

// validateWithinWorkingHours проверяет, что интервал [start, end) целиком
// лежит внутри рабочих часов сотрудника
func validateWithinWorkingHours(intervals []*domain.WorkInterval, start, end types.TimeString) error {
	workInterval := firstWorkableInterval(intervals)
	if workInterval == nil {
		return fmt.Errorf("%w: employee does not work on this weekday", ErrOutsideWorkingHours)
	}

	if !workInterval.Contains(start, end) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideWorkingHours, start, end, workInterval.StartTime, workInterval.EndTime)
	}

	return nil
}

// validateNoConflicts проверяет, что интервал [start, end) не пересекается
// ни с одной активной записью, кроме переносимой
func validateNoConflicts(appointments []*domain.Appointment, excludeID int64, start, end types.TimeString) error {
	for _, appt := range appointments {
		if appt.ID == excludeID || !appt.IsActive() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if domain.IntervalsOverlap(start, end, appt.StartTime, apptEnd) {
			return fmt.Errorf("%w: overlaps appointment id=%d (%s-%s)",
				ErrSlotConflict, appt.ID, appt.StartTime, apptEnd)
		}
	}

	return nil
}

// firstWorkableInterval возвращает первый рабочий интервал дня
// Повторяет семантику расчета доступности: при разрывных сменах
// авторитетен первый интервал
func firstWorkableInterval(intervals []*domain.WorkInterval) *domain.WorkInterval {
	for _, interval := range intervals {
		if interval.IsTimeOff {
			continue
		}
		return interval
	}
	return nil
}
