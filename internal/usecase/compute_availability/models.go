package compute_availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на расчет доступных слотов
type Request struct {
	EmployeeID      int64     // ID сотрудника
	Date            time.Time // Дата, на которую рассчитываются слоты (без времени)
	DurationMinutes int       // Длительность услуги в минутах (если ServiceIDs пуст)
	ServiceIDs      []int64   // Услуги, из которых складывается длительность (опционально)
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	EmployeeID      int64              // ID сотрудника
	Date            time.Time          // Дата расчета
	DurationMinutes int                // Итоговая длительность, по которой считались слоты
	Slots           []types.TimeString // Доступные времена начала в хронологическом порядке
}
