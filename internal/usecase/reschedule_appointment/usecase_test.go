package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	byID         map[int64]*domain.Appointment
	byEmployee   []*domain.Appointment
	updateCalls  int
	updateResult *domain.Appointment
	updateErr    error
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointmentRepo) GetByEmployeesWithFilter(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.byEmployee, nil
}

func (f *fakeAppointmentRepo) UpdateSchedule(ctx context.Context, id int64, employeeID int64, date time.Time, startTime types.TimeString) (*domain.Appointment, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}

	updated := *f.byID[id]
	updated.EmployeeID = employeeID
	updated.AppointmentDate = date
	updated.StartTime = startTime
	return &updated, nil
}

type fakeScheduleRepo struct {
	intervals []*domain.WorkInterval
}

func (f *fakeScheduleRepo) GetByEmployeeAndWeekday(ctx context.Context, employeeID int64, weekday time.Weekday) ([]*domain.WorkInterval, error) {
	return f.intervals, nil
}

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func testAppointment(id int64, start string, durationMinutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		EmployeeID:      10,
		CustomerID:      100,
		AppointmentDate: testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func workingHours(start, end string) []*domain.WorkInterval {
	return []*domain.WorkInterval{{
		ID:         1,
		EmployeeID: 10,
		Weekday:    testDate.Weekday(),
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}}
}

func validRequest() *Request {
	return &Request{
		AppointmentID: 1,
		UserID:        5,
		EmployeeID:    10,
		Date:          testDate,
		StartTime:     types.TimeString("14:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "14:00", resp.StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	uc := NewUseCase(repo, &fakeScheduleRepo{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_CompletedAppointmentRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusCompleted),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCannotReschedule)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
	}
	// Смена до 14:30 - интервал 14:00-15:00 не помещается и отклоняется целиком
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "14:30")}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestExecute_NoWorkingDay(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: nil}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
		byEmployee: []*domain.Appointment{
			testAppointment(2, "14:30", 60, domain.StatusConfirmed),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestExecute_MovedAppointmentDoesNotConflictWithItself(t *testing.T) {
	moved := testAppointment(1, "14:15", 60, domain.StatusConfirmed)
	repo := &fakeAppointmentRepo{
		byID:       map[int64]*domain.Appointment{1: moved},
		byEmployee: []*domain.Appointment{moved},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.StartTime.String())
}

func TestExecute_TouchingAppointmentIsNotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
		byEmployee: []*domain.Appointment{
			// Заканчивается ровно в 14:00 - полуоткрытые интервалы граничат
			testAppointment(2, "13:00", 60, domain.StatusConfirmed),
			// Начинается ровно в 15:00
			testAppointment(3, "15:00", 60, domain.StatusConfirmed),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: testAppointment(1, "09:00", 60, domain.StatusConfirmed),
		},
		byEmployee: []*domain.Appointment{
			testAppointment(2, "14:00", 60, domain.StatusCancelled),
		},
	}
	uc := NewUseCase(repo, &fakeScheduleRepo{intervals: workingHours("09:00", "18:00")}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, passthroughTxManager{}, nopLogger{})

	req := validRequest()
	req.EmployeeID = 0

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
