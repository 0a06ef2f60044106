package compute_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Длительность задается либо явно, либо списком услуг
	if len(req.ServiceIDs) == 0 && req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes or serviceIds are required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 && req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d exceeds maximum %d minutes",
			ErrInvalidDuration, req.DurationMinutes, domain.MaxDurationMinutes)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateResolvedDuration проверяет итоговую длительность после резолва услуг
func validateResolvedDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: resolved duration is %d minutes", ErrInvalidDuration, durationMinutes)
	}
	if durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: resolved duration %d exceeds maximum %d minutes",
			ErrInvalidDuration, durationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}
