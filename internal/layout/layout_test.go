package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func appt(id int64, start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		EmployeeID:      1,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func boxByID(t *testing.T, boxes []Box, id int64) Box {
	t.Helper()
	for _, b := range boxes {
		if b.AppointmentID == id {
			return b
		}
	}
	t.Fatalf("box for appointment %d not found", id)
	return Box{}
}

func TestCompute_Empty(t *testing.T) {
	boxes, err := Compute(nil)
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestCompute_SingleAppointmentFullWidth(t *testing.T) {
	boxes, err := Compute([]*domain.Appointment{appt(1, "09:00", 60)})
	require.NoError(t, err)
	require.Len(t, boxes, 1)

	assert.Equal(t, 0, boxes[0].Column)
	assert.Equal(t, 0.0, boxes[0].LeftPercent)
	assert.Equal(t, 100.0, boxes[0].WidthPercent)
}

func TestCompute_ChainedOverlaps(t *testing.T) {
	// A 09:00-10:00 и B 09:30-10:30 пересекаются; C 10:00-11:00
	// пересекается только с B и может занять колонку A
	boxes, err := Compute([]*domain.Appointment{
		appt(1, "09:00", 60),
		appt(2, "09:30", 60),
		appt(3, "10:00", 60),
	})
	require.NoError(t, err)
	require.Len(t, boxes, 3)

	a := boxByID(t, boxes, 1)
	b := boxByID(t, boxes, 2)
	c := boxByID(t, boxes, 3)

	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 1, b.Column)
	// Колонка A освободилась к 10:00 (полуоткрытые интервалы)
	assert.Equal(t, 0, c.Column)

	// Максимум два одновременно активных в каждом интервале
	assert.Equal(t, 50.0, a.WidthPercent)
	assert.Equal(t, 50.0, b.WidthPercent)
	assert.Equal(t, 50.0, c.WidthPercent)

	assert.Equal(t, 0.0, a.LeftPercent)
	assert.Equal(t, 50.0, b.LeftPercent)
	assert.Equal(t, 0.0, c.LeftPercent)
}

func TestCompute_TouchingEndpointsShareColumn(t *testing.T) {
	boxes, err := Compute([]*domain.Appointment{
		appt(1, "09:00", 60),
		appt(2, "10:00", 60),
	})
	require.NoError(t, err)

	a := boxByID(t, boxes, 1)
	b := boxByID(t, boxes, 2)

	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 0, b.Column)
	assert.Equal(t, 100.0, a.WidthPercent)
	assert.Equal(t, 100.0, b.WidthPercent)
}

func TestCompute_IsolatedAppointmentStaysFullWidth(t *testing.T) {
	// Тройное пересечение утром не сужает одиночную запись вечером
	boxes, err := Compute([]*domain.Appointment{
		appt(1, "09:00", 120),
		appt(2, "09:15", 60),
		appt(3, "09:30", 60),
		appt(4, "15:00", 30),
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0/3.0, boxByID(t, boxes, 1).WidthPercent, 0.0001)
	assert.Equal(t, 100.0, boxByID(t, boxes, 4).WidthPercent)
	assert.Equal(t, 0, boxByID(t, boxes, 4).Column)
}

func TestCompute_DeterministicAcrossInputOrder(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, "09:00", 60),
		appt(2, "09:00", 30),
		appt(3, "09:30", 60),
		appt(4, "10:00", 45),
		appt(5, "11:00", 30),
	}

	reference, err := Compute(appointments)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.Appointment, len(appointments))
		copy(shuffled, appointments)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		boxes, err := Compute(shuffled)
		require.NoError(t, err)
		assert.Equal(t, reference, boxes)
	}
}

func TestCompute_EqualStartTiesBrokenByID(t *testing.T) {
	boxes, err := Compute([]*domain.Appointment{
		appt(7, "09:00", 30),
		appt(3, "09:00", 30),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, boxByID(t, boxes, 3).Column)
	assert.Equal(t, 1, boxByID(t, boxes, 7).Column)
}

func TestCompute_BoxesStayWithinGrid(t *testing.T) {
	boxes, err := Compute([]*domain.Appointment{
		appt(1, "09:00", 180),
		appt(2, "09:30", 60),
		appt(3, "10:00", 90),
		appt(4, "10:30", 60),
		appt(5, "11:00", 30),
	})
	require.NoError(t, err)

	for _, b := range boxes {
		assert.GreaterOrEqual(t, b.LeftPercent, 0.0)
		assert.LessOrEqual(t, b.LeftPercent+b.WidthPercent, 100.0+1e-9,
			"appointment %d overflows the grid", b.AppointmentID)
	}
}

func TestCompute_InvalidDuration(t *testing.T) {
	_, err := Compute([]*domain.Appointment{appt(1, "09:00", 0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCompute_InvalidStartTime(t *testing.T) {
	_, err := Compute([]*domain.Appointment{appt(1, "garbage", 30)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
