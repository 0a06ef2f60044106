package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// RescheduleUseCase интерфейс use case переноса записи
type RescheduleUseCase interface {
	Execute(ctx context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error)
}

// UseCasePersistence адаптирует use case переноса под интерфейс Persistence
// доски. Все доменные проверки (рабочие часы, конфликты) выполняет use case;
// доска узнает об отказе через ошибку Confirm.
type UseCasePersistence struct {
	useCase RescheduleUseCase
	userID  int64
}

// NewUseCasePersistence создает адаптер для пользователя доски
func NewUseCasePersistence(useCase RescheduleUseCase, userID int64) *UseCasePersistence {
	return &UseCasePersistence{
		useCase: useCase,
		userID:  userID,
	}
}

// Reschedule фиксирует перенос через use case и возвращает запись
// в сохраненном виде
func (p *UseCasePersistence) Reschedule(ctx context.Context, appointmentID int64, employeeID int64, date time.Time, startTime types.TimeString) (*domain.Appointment, error) {
	resp, err := p.useCase.Execute(ctx, &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        p.userID,
		EmployeeID:    employeeID,
		Date:          date,
		StartTime:     startTime,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Appointment{
		ID:              resp.ID,
		EmployeeID:      resp.EmployeeID,
		CustomerID:      resp.CustomerID,
		AppointmentDate: resp.Date,
		StartTime:       resp.StartTime,
		DurationMinutes: resp.DurationMinutes,
		Status:          domain.AppointmentStatus(resp.Status),
		ServiceIDs:      resp.ServiceIDs,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}, nil
}
