package compute_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// computeAvailableSlots рассчитывает доступные времена начала записи
// Сканирует рабочий интервал с шагом granularityMinutes от начала смены;
// кандидат [t, t+duration) принимается, если он целиком помещается в смену
// и не пересекается ни с одной активной записью.
//
// Пересечение проверяется на полуоткрытых интервалах: слот, заканчивающийся
// ровно в момент начала другой записи, допустим.
//
// Примеры:
// - Слот 09:45-10:15, запись 10:00-10:30 → ЕСТЬ пересечение, слот отклонен
// - Слот 09:30-10:00, запись 10:00-10:30 → НЕТ пересечения (граничат)
func computeAvailableSlots(
	interval *domain.WorkInterval,
	appointments []*domain.Appointment,
	durationMinutes int,
	granularityMinutes int,
) ([]types.TimeString, error) {
	// Нет рабочего интервала или выходной - нет доступности, это не ошибка
	if interval == nil || !interval.IsWorkable() {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0)
	current := interval.StartTime

	for current.IsBefore(interval.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот пересек полночь - дальше сканировать нечего
			break
		}

		// Слот должен целиком помещаться в рабочий интервал
		if slotEnd.IsAfter(interval.EndTime) {
			break
		}

		if countConflicts(current, slotEnd, appointments) == 0 {
			slots = append(slots, current)
		}

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// countConflicts подсчитывает количество активных записей, пересекающихся
// со слотом [slotStart, slotEnd). Отмененные и no-show записи время не занимают.
func countConflicts(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) int {
	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			// Запись с некорректным временем конфликт не создает
			continue
		}

		if domain.IntervalsOverlap(slotStart, slotEnd, appt.StartTime, apptEnd) {
			count++
		}
	}

	return count
}

// firstWorkableInterval возвращает первый рабочий интервал дня
// При нескольких интервалах на один день недели (разрывные смены) авторитетен
// первый по порядку создания - остальные игнорируются
func firstWorkableInterval(intervals []*domain.WorkInterval) *domain.WorkInterval {
	for _, interval := range intervals {
		if interval.IsTimeOff {
			continue
		}
		return interval
	}
	return nil
}

// resolveDuration вычисляет итоговую длительность по списку услуг
func resolveDuration(durations []int) (int, error) {
	total := 0
	for _, d := range durations {
		if d <= 0 {
			return 0, fmt.Errorf("%w: service has non-positive duration %d", ErrInvalidDuration, d)
		}
		total += d
	}
	return total, nil
}
