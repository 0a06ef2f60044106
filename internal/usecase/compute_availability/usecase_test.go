package compute_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByEmployeesWithFilter(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	intervals []*domain.WorkInterval
}

func (f *fakeScheduleRepo) GetByEmployeeAndWeekday(ctx context.Context, employeeID int64, weekday time.Weekday) ([]*domain.WorkInterval, error) {
	return f.intervals, nil
}

type fakeCatalogClient struct {
	employees map[int64]*catalogservice.Employee
	services  map[int64]*catalogservice.Service
}

func (f *fakeCatalogClient) GetEmployee(ctx context.Context, employeeID int64) (*catalogservice.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, catalogservice.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return s, nil
}

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func knownEmployee() *fakeCatalogClient {
	return &fakeCatalogClient{
		employees: map[int64]*catalogservice.Employee{
			1: {ID: 1, Name: "Анна", IsActive: true},
		},
		services: map[int64]*catalogservice.Service{
			7: {ID: 7, Name: "Стрижка", DurationMinutes: 45, IsActive: true},
			8: {ID: 8, Name: "Укладка", DurationMinutes: 30, IsActive: true},
		},
	}
}

func testUseCase(scheduleRepo *fakeScheduleRepo, appointmentRepo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(appointmentRepo, scheduleRepo, knownEmployee(), 15, nopLogger{})
}

func TestExecute_FullDay(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{intervals: []*domain.WorkInterval{{
		ID: 1, EmployeeID: 1, StartTime: "09:00", EndTime: "17:00",
	}}}
	uc := testUseCase(scheduleRepo, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      1,
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 31)
	assert.Equal(t, "09:00", resp.Slots[0].String())
	assert.Equal(t, "16:30", resp.Slots[len(resp.Slots)-1].String())
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_DurationFromServices(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{intervals: []*domain.WorkInterval{{
		ID: 1, EmployeeID: 1, StartTime: "09:00", EndTime: "17:00",
	}}}
	uc := testUseCase(scheduleRepo, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 1,
		Date:       testDate,
		ServiceIDs: []int64{7, 8},
	})
	require.NoError(t, err)

	// 45 + 30 минут; список услуг приоритетнее явной длительности
	assert.Equal(t, 75, resp.DurationMinutes)
}

func TestExecute_UnknownEmployee(t *testing.T) {
	uc := testUseCase(&fakeScheduleRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      99,
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_UnknownService(t *testing.T) {
	uc := testUseCase(&fakeScheduleRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 1,
		Date:       testDate,
		ServiceIDs: []int64{404},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NonWorkingDayReturnsEmptyList(t *testing.T) {
	// Нет интервалов на этот день недели - пустой список, не ошибка
	uc := testUseCase(&fakeScheduleRepo{intervals: nil}, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      1,
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_TimeOffReturnsEmptyList(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{intervals: []*domain.WorkInterval{{
		ID: 1, EmployeeID: 1, StartTime: "09:00", EndTime: "17:00", IsTimeOff: true,
	}}}
	uc := testUseCase(scheduleRepo, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      1,
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_AppointmentsBlockSlots(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{intervals: []*domain.WorkInterval{{
		ID: 1, EmployeeID: 1, StartTime: "09:00", EndTime: "12:00",
	}}}
	appointmentRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{{
		ID: 5, EmployeeID: 1, AppointmentDate: testDate,
		StartTime: types.TimeString("10:00"), DurationMinutes: 30,
		Status: domain.StatusConfirmed,
	}}}
	uc := testUseCase(scheduleRepo, appointmentRepo)

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      1,
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = s.String()
	}
	assert.NotContains(t, slots, "09:45")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:15")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")
}

func TestExecute_SplitShiftUsesFirstInterval(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{intervals: []*domain.WorkInterval{
		{ID: 1, EmployeeID: 1, StartTime: "09:00", EndTime: "13:00"},
		{ID: 2, EmployeeID: 1, StartTime: "15:00", EndTime: "19:00"},
	}}
	uc := testUseCase(scheduleRepo, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID:      1,
		Date:            testDate,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Слоты только из первой смены
	assert.Equal(t, "09:00", resp.Slots[0].String())
	assert.Equal(t, "12:00", resp.Slots[len(resp.Slots)-1].String())
}
