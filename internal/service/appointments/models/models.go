package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/layout"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GetDayScheduleRequest запрос расписания на день
type GetDayScheduleRequest struct {
	Date        time.Time // Дата расписания
	EmployeeIDs []int64   // Сотрудники, колонки которых нужны
}

// AppointmentView запись вместе с ее позицией в колонке сотрудника
type AppointmentView struct {
	ID              int64            `json:"id"`
	EmployeeID      int64            `json:"employee_id"`
	CustomerID      int64            `json:"customer_id"`
	Date            string           `json:"date"`
	StartTime       types.TimeString `json:"start_time"`
	EndTime         types.TimeString `json:"end_time"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
	ServiceIDs      []int64          `json:"service_ids,omitempty"`
	ServiceName     string           `json:"service_name"`
	ServicePrice    float64          `json:"service_price"`
	Notes           *string          `json:"notes,omitempty"`

	// Позиция блока внутри колонки сотрудника
	Column       int     `json:"column"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// EmployeeColumn колонка одного сотрудника: информация о сотруднике,
// его рабочие интервалы на день и разложенные записи
type EmployeeColumn struct {
	EmployeeID    int64              `json:"employee_id"`
	EmployeeName  string             `json:"employee_name"`
	EmployeeColor string             `json:"employee_color,omitempty"`
	WorkIntervals []WorkIntervalView `json:"work_intervals"`
	Appointments  []AppointmentView  `json:"appointments"`
}

// WorkIntervalView рабочий интервал сотрудника на день
type WorkIntervalView struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	IsTimeOff bool             `json:"is_time_off"`
}

// DayScheduleResponse расписание на день: колонка на каждого сотрудника
type DayScheduleResponse struct {
	Date    string           `json:"date"`
	Columns []EmployeeColumn `json:"columns"`
}

// AppointmentResponse одиночная запись без позиционирования
type AppointmentResponse struct {
	ID                 int64            `json:"id"`
	EmployeeID         int64            `json:"employee_id"`
	CustomerID         int64            `json:"customer_id"`
	Date               string           `json:"date"`
	StartTime          types.TimeString `json:"start_time"`
	DurationMinutes    int              `json:"duration_minutes"`
	Status             string           `json:"status"`
	ServiceIDs         []int64          `json:"service_ids,omitempty"`
	ServiceName        string           `json:"service_name"`
	ServicePrice       float64          `json:"service_price"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// FromDomainAppointment конвертирует domain запись в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		CustomerID:         a.CustomerID,
		Date:               a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceIDs:         a.ServiceIDs,
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// BuildAppointmentViews соединяет записи с их боксами раскладки
// boxes приходят из layout.Compute для того же набора записей
func BuildAppointmentViews(appointments []*domain.Appointment, boxes []layout.Box) []AppointmentView {
	byID := make(map[int64]layout.Box, len(boxes))
	for _, box := range boxes {
		byID[box.AppointmentID] = box
	}

	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		endTime, err := a.EndTime()
		if err != nil {
			continue
		}

		box := byID[a.ID]
		views = append(views, AppointmentView{
			ID:              a.ID,
			EmployeeID:      a.EmployeeID,
			CustomerID:      a.CustomerID,
			Date:            a.AppointmentDate.Format(domain.DateFormat),
			StartTime:       a.StartTime,
			EndTime:         endTime,
			DurationMinutes: a.DurationMinutes,
			Status:          string(a.Status),
			ServiceIDs:      a.ServiceIDs,
			ServiceName:     a.ServiceName,
			ServicePrice:    a.ServicePrice,
			Notes:           a.Notes,
			Column:          box.Column,
			LeftPercent:     box.LeftPercent,
			WidthPercent:    box.WidthPercent,
		})
	}

	return views
}

// FromDomainWorkIntervals конвертирует рабочие интервалы в view-модели
func FromDomainWorkIntervals(intervals []*domain.WorkInterval) []WorkIntervalView {
	views := make([]WorkIntervalView, 0, len(intervals))
	for _, wi := range intervals {
		views = append(views, WorkIntervalView{
			StartTime: wi.StartTime,
			EndTime:   wi.EndTime,
			IsTimeOff: wi.IsTimeOff,
		})
	}
	return views
}
