package compute_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func workInterval(start, end string) *domain.WorkInterval {
	return &domain.WorkInterval{
		ID:         1,
		EmployeeID: 1,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
}

func activeAppt(start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		EmployeeID:      1,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestComputeAvailableSlots_FullDayNoAppointments(t *testing.T) {
	slots, err := computeAvailableSlots(workInterval("09:00", "17:00"), nil, 30, 15)
	require.NoError(t, err)

	// 09:00..16:30 с шагом 15 минут: последний слот заканчивается ровно в 17:00
	require.Len(t, slots, 31)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "16:30", slots[len(slots)-1].String())
}

func TestComputeAvailableSlots_ExcludesConflicting(t *testing.T) {
	// Запись 10:00-10:30 выбивает слоты, пересекающие её интервал.
	// Слот 09:30-10:00 граничит с записью и остается доступным
	slots, err := computeAvailableSlots(
		workInterval("09:00", "12:00"),
		[]*domain.Appointment{activeAppt("10:00", 30)},
		30, 15,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"09:00", "09:15", "09:30",
		"10:30", "10:45", "11:00", "11:15", "11:30",
	}, slotStrings(slots))
}

func TestComputeAvailableSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	cancelled := activeAppt("10:00", 30)
	cancelled.Status = domain.StatusCancelled

	slots, err := computeAvailableSlots(
		workInterval("09:00", "12:00"),
		[]*domain.Appointment{cancelled},
		30, 15,
	)
	require.NoError(t, err)
	require.Len(t, slots, 11)
	assert.Contains(t, slotStrings(slots), "10:00")
}

func TestComputeAvailableSlots_NoInterval(t *testing.T) {
	slots, err := computeAvailableSlots(nil, nil, 30, 15)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_TimeOff(t *testing.T) {
	interval := workInterval("09:00", "17:00")
	interval.IsTimeOff = true

	slots, err := computeAvailableSlots(interval, nil, 30, 15)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_DurationLongerThanShift(t *testing.T) {
	slots, err := computeAvailableSlots(workInterval("09:00", "10:00"), nil, 90, 15)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_DurationExactlyFits(t *testing.T) {
	slots, err := computeAvailableSlots(workInterval("09:00", "10:00"), nil, 60, 15)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00"}, slotStrings(slots))
}

func TestComputeAvailableSlots_ShiftUntilMidnight(t *testing.T) {
	slots, err := computeAvailableSlots(workInterval("23:00", "24:00"), nil, 30, 15)
	require.NoError(t, err)

	assert.Equal(t, []string{"23:00", "23:15", "23:30"}, slotStrings(slots))
}

func TestFirstWorkableInterval_SkipsTimeOff(t *testing.T) {
	dayOff := workInterval("09:00", "13:00")
	dayOff.IsTimeOff = true
	afternoon := workInterval("14:00", "18:00")

	picked := firstWorkableInterval([]*domain.WorkInterval{dayOff, afternoon})
	require.NotNil(t, picked)
	assert.Equal(t, "14:00", picked.StartTime.String())
}

func TestFirstWorkableInterval_SplitShiftUsesFirst(t *testing.T) {
	morning := workInterval("09:00", "13:00")
	evening := workInterval("15:00", "19:00")

	picked := firstWorkableInterval([]*domain.WorkInterval{morning, evening})
	require.NotNil(t, picked)
	assert.Equal(t, "09:00", picked.StartTime.String())
}

func TestFirstWorkableInterval_AllTimeOff(t *testing.T) {
	dayOff := workInterval("09:00", "17:00")
	dayOff.IsTimeOff = true

	assert.Nil(t, firstWorkableInterval([]*domain.WorkInterval{dayOff}))
}

func TestResolveDuration(t *testing.T) {
	total, err := resolveDuration([]int{30, 45, 15})
	require.NoError(t, err)
	assert.Equal(t, 90, total)
}

func TestResolveDuration_NonPositive(t *testing.T) {
	_, err := resolveDuration([]int{30, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestValidateRequest(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "missing employee",
			req:     &Request{Date: date, DurationMinutes: 30},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{EmployeeID: 1, DurationMinutes: 30},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing duration and services",
			req:     &Request{EmployeeID: 1, Date: date},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duration too long",
			req:     &Request{EmployeeID: 1, Date: date, DurationMinutes: domain.MaxDurationMinutes + 1},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "negative service id",
			req:     &Request{EmployeeID: 1, Date: date, ServiceIDs: []int64{-1}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
