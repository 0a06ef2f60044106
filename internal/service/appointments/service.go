package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/layout"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Service сервис чтения расписания: записи и их раскладка по колонкам
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetDaySchedule собирает расписание на день: по колонке на каждого
// запрошенного сотрудника с его рабочими интервалами и записями,
// разложенными без визуальных пересечений
//
// Отмененные и неявившиеся записи в раскладку не попадают.
func (s *Service) GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.DayScheduleResponse, error) {
	if len(req.EmployeeIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one employee is required", ErrInvalidInput)
	}

	s.logger.Info("GetDaySchedule: date=%s, employees=%v", req.Date.Format(domain.DateFormat), req.EmployeeIDs)

	// Одним запросом забираем активные записи всех сотрудников на дату
	appointments, err := s.appointmentRepo.GetByEmployeesWithFilter(ctx, domain.EmployeeAppointmentsFilter{
		EmployeeIDs: req.EmployeeIDs,
		StartDate:   ptr.Ptr(req.Date),
		EndDate:     ptr.Ptr(req.Date),
	})
	if err != nil {
		s.logger.Error("GetDaySchedule: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	byEmployee := make(map[int64][]*domain.Appointment, len(req.EmployeeIDs))
	for _, a := range appointments {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	columns := make([]models.EmployeeColumn, 0, len(req.EmployeeIDs))
	for _, employeeID := range req.EmployeeIDs {
		column, err := s.buildEmployeeColumn(ctx, employeeID, req.Date.Weekday(), byEmployee[employeeID])
		if err != nil {
			return nil, err
		}
		columns = append(columns, *column)
	}

	s.logger.Info("GetDaySchedule: built %d columns with %d appointments for date=%s",
		len(columns), len(appointments), req.Date.Format(domain.DateFormat))

	return &models.DayScheduleResponse{
		Date:    req.Date.Format(domain.DateFormat),
		Columns: columns,
	}, nil
}

func (s *Service) buildEmployeeColumn(ctx context.Context, employeeID int64, weekday time.Weekday, appointments []*domain.Appointment) (*models.EmployeeColumn, error) {
	employee, err := s.catalogClient.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEmployeeNotFound) {
			s.logger.Warn("GetDaySchedule: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetDaySchedule: failed to get employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - failed to get employee: %v", ErrInternal, err)
	}

	intervals, err := s.scheduleRepo.GetByEmployeeAndWeekday(ctx, employeeID, weekday)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get work intervals for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - failed to get work intervals: %v", ErrInternal, err)
	}

	boxes, err := layout.Compute(appointments)
	if err != nil {
		s.logger.Error("GetDaySchedule: layout failed for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - layout error: %v", ErrInternal, err)
	}

	views := models.BuildAppointmentViews(appointments, boxes)
	sort.Slice(views, func(i, j int) bool {
		if views[i].StartTime == views[j].StartTime {
			return views[i].ID < views[j].ID
		}
		return views[i].StartTime.IsBefore(views[j].StartTime)
	})

	return &models.EmployeeColumn{
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
		EmployeeColor: employee.Color,
		WorkIntervals: models.FromDomainWorkIntervals(intervals),
		Appointments:  views,
	}, nil
}
