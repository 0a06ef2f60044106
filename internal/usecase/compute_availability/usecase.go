package compute_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case расчета доступных слотов для записи
type UseCase struct {
	appointmentRepo    AppointmentRepository
	scheduleRepo       ScheduleRepository
	catalogClient      CatalogServiceClient
	granularityMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
// granularityMinutes - шаг сканирования слотов; 0 означает значение по умолчанию
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		scheduleRepo:       scheduleRepo,
		catalogClient:      catalogClient,
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Execute выполняет расчет доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeAvailability: employee=%d, date=%s, duration=%d, services=%v",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сотрудника
	if _, err := uc.catalogClient.GetEmployee(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, catalogClient.ErrEmployeeNotFound) {
			uc.logger.Warn("ComputeAvailability: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("ComputeAvailability: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Резолвим длительность: сумма длительностей услуг приоритетнее явного значения
	durationMinutes := req.DurationMinutes
	if len(req.ServiceIDs) > 0 {
		resolved, err := uc.resolveServicesDuration(ctx, req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		durationMinutes = resolved
	}

	if err := validateResolvedDuration(durationMinutes); err != nil {
		uc.logger.Warn("ComputeAvailability: duration validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем рабочее расписание сотрудника на день недели
	intervals, err := uc.scheduleRepo.GetByEmployeeAndWeekday(ctx, req.EmployeeID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get work schedule for employee=%d: %v",
			req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get work schedule: %v", ErrInternal, err)
	}

	workInterval := firstWorkableInterval(intervals)
	if workInterval == nil {
		// Сотрудник не работает в этот день - пустой список, не ошибка
		uc.logger.Info("ComputeAvailability: employee=%d has no working hours on %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, durationMinutes), nil
	}

	// 5. Получаем активные записи сотрудника на эту дату
	filter := domain.EmployeeAppointmentsFilter{
		EmployeeIDs:     []int64{req.EmployeeID},
		StartDate:       ptr.Ptr(req.Date),
		EndDate:         ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByEmployeesWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get appointments for employee=%d: %v",
			req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Рассчитываем доступные слоты
	slots, err := computeAvailableSlots(workInterval, appointments, durationMinutes, uc.granularityMinutes)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to compute slots for employee=%d: %v",
			req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("ComputeAvailability: computed %d slots for employee=%d, date=%s",
		len(slots), req.EmployeeID, req.Date.Format(domain.DateFormat))

	return &Response{
		EmployeeID:      req.EmployeeID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

// resolveServicesDuration суммирует длительности услуг из CatalogService
func (uc *UseCase) resolveServicesDuration(ctx context.Context, serviceIDs []int64) (int, error) {
	durations := make([]int, 0, len(serviceIDs))

	for _, serviceID := range serviceIDs {
		service, err := uc.catalogClient.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("ComputeAvailability: service id=%d not found", serviceID)
				return 0, ErrServiceNotFound
			}
			uc.logger.Error("ComputeAvailability: failed to get service id=%d: %v", serviceID, err)
			return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		durations = append(durations, service.DurationMinutes)
	}

	return resolveDuration(durations)
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		EmployeeID:      req.EmployeeID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Slots:           []types.TimeString{},
	}
}
