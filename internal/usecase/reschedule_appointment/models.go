package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID переносимой записи
	UserID        int64            // ID пользователя, выполняющего перенос (для логирования)
	EmployeeID    int64            // Новый сотрудник (может совпадать с текущим)
	Date          time.Time        // Новая дата записи
	StartTime     types.TimeString // Новое время начала; длительность сохраняется
}

// Response модель ответа с обновленной записью
// Содержит запись в том виде, в котором она сохранена - источник истины
// для локального состояния клиента
type Response struct {
	ID              int64
	EmployeeID      int64
	CustomerID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceIDs      []int64
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDomain конвертирует domain запись в response
func FromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		CustomerID:      a.CustomerID,
		Date:            a.AppointmentDate,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceIDs:      a.ServiceIDs,
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
