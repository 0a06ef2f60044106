package scheduler

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// State состояние конечного автомата доски
type State int

const (
	// StateIdle обычный просмотр, перенос не начат
	StateIdle State = iota
	// StateDragging запись захвачена и перетаскивается
	StateDragging
	// StatePendingConfirmation перенос ожидает подтверждения пользователя
	StatePendingConfirmation
	// StateCommitting перенос отправлен в хранилище, ответ еще не получен
	StateCommitting
)

// String возвращает читаемое имя состояния
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StatePendingConfirmation:
		return "pending_confirmation"
	case StateCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// ViewMode режим отображения доски
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// DropTarget целевая позиция сброса: дата, время и сотрудник,
// полученные из координат указателя
type DropTarget struct {
	Date       time.Time
	StartTime  types.TimeString
	EmployeeID int64
}

// PendingChange неподтвержденный перенос записи
// Существует не более одного одновременно; уничтожается при подтверждении
// или отмене. Исходная запись не изменяется до успешного коммита.
type PendingChange struct {
	Appointment        *domain.Appointment
	ProposedEmployeeID int64
	ProposedDate       time.Time
	ProposedStart      types.TimeString
}

// ProposedEnd возвращает конец предлагаемого интервала
// Длительность записи сохраняется при переносе
func (p *PendingChange) ProposedEnd() (types.TimeString, error) {
	return p.ProposedStart.AddMinutes(p.Appointment.DurationMinutes)
}

// dragState захваченная запись и смещение точки захвата
type dragState struct {
	appointment *domain.Appointment
	// Смещение указателя от верхней границы блока записи в минутах.
	// Позволяет привязать позицию сброса к началу записи, а не к точке,
	// за которую пользователь ее схватил
	grabOffsetMinutes int
}
