package compute_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByEmployeesWithFilter получает записи сотрудников по фильтру
	GetByEmployeesWithFilter(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	// GetByEmployeeAndWeekday получает рабочие интервалы сотрудника на день недели
	// в порядке создания (первый интервал - авторитетный)
	GetByEmployeeAndWeekday(ctx context.Context, employeeID int64, weekday time.Weekday) ([]*domain.WorkInterval, error)
}

// CatalogServiceClient интерфейс клиента CatalogService
type CatalogServiceClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*catalogservice.Employee, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
