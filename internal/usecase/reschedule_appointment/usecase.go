package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case переноса записи на новое время и/или сотрудника
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет перенос записи
// Проверки и обновление выполняются в сериализуемой транзакции, чтобы две
// конкурирующие записи не заняли один слот. Длительность записи сохраняется;
// интервал вне рабочих часов или с конфликтом отклоняется целиком,
// без подгонки под границы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, employee=%d, date=%s, time=%s",
		req.AppointmentID, req.UserID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем переносимую запись
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s",
				req.AppointmentID, appointment.Status)
			return ErrCannotReschedule
		}

		// 2.2. Длительность сохраняется при переносе
		newEnd, err := req.StartTime.AddMinutes(appointment.DurationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: proposed interval crosses midnight: %v", err)
			return fmt.Errorf("%w: proposed interval crosses midnight", ErrOutsideWorkingHours)
		}

		// 2.3. Новый интервал должен лежать в рабочих часах нового сотрудника
		intervals, err := uc.scheduleRepo.GetByEmployeeAndWeekday(txCtx, req.EmployeeID, req.Date.Weekday())
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get work schedule for employee=%d: %v",
				req.EmployeeID, err)
			return fmt.Errorf("%w: failed to get work schedule: %v", ErrInternal, err)
		}

		if err := validateWithinWorkingHours(intervals, req.StartTime, newEnd); err != nil {
			uc.logger.Warn("RescheduleAppointment: %v", err)
			return err
		}

		// 2.4. Получаем активные записи нового сотрудника на дату (с блокировкой FOR UPDATE)
		filter := domain.EmployeeAppointmentsFilter{
			EmployeeIDs:     []int64{req.EmployeeID},
			StartDate:       ptr.Ptr(req.Date),
			EndDate:         ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByEmployeesWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 2.5. Проверяем отсутствие конфликтов (сама переносимая запись не считается)
		if err := validateNoConflicts(appointments, appointment.ID, req.StartTime, newEnd); err != nil {
			uc.logger.Warn("RescheduleAppointment: %v", err)
			return err
		}

		// 2.6. Атомарно обновляем запись
		updated, err := uc.appointmentRepo.UpdateSchedule(txCtx, req.AppointmentID, req.EmployeeID, req.Date, req.StartTime)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v",
				req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to employee=%d, date=%s, time=%s",
		result.ID, result.EmployeeID, result.AppointmentDate.Format(domain.DateFormat), result.StartTime)

	return FromDomain(result), nil
}
