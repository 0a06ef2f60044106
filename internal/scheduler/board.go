package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/layout"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Persistence внешний коллаборатор для фиксации переноса
// Должен отклонять (а не подгонять) интервал вне рабочих часов или
// с конфликтом; возвращает запись в сохраненном виде - источник истины
type Persistence interface {
	Reschedule(ctx context.Context, appointmentID int64, employeeID int64, date time.Time, startTime types.TimeString) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки доски
type Config struct {
	// Шаг квантования позиции сброса в минутах
	SlotGranularityMinutes int
	// Масштаб сетки: пикселей на час по вертикали
	PixelsPerHour int
}

func (c Config) withDefaults() Config {
	if c.SlotGranularityMinutes <= 0 {
		c.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if c.PixelsPerHour <= 0 {
		c.PixelsPerHour = domain.DefaultPixelsPerHour
	}
	return c
}

// Board состояние одной логической доски расписания: дата, режим просмотра,
// выбранные сотрудники и текущий набор записей. Управляет переносом записей
// через конечный автомат Idle → Dragging → PendingConfirmation → Committing.
//
// Доска управляется событиями одного UI-потока и не предназначена для
// конкурентного использования.
type Board struct {
	cfg         Config
	persistence Persistence
	logger      Logger

	state        State
	date         time.Time
	view         ViewMode
	appointments map[int64]*domain.Appointment

	// Независимые кэши выбранных сотрудников: мультивыбор для дневного
	// режима и одиночный выбор для недели/месяца. Переключение режима
	// не сбрасывает выбор другого режима
	daySelection  []int64
	weekSelection []int64

	drag    *dragState
	pending *PendingChange
}

// NewBoard создает доску в состоянии Idle
func NewBoard(persistence Persistence, cfg Config, logger Logger) *Board {
	return &Board{
		cfg:          cfg.withDefaults(),
		persistence:  persistence,
		logger:       logger,
		state:        StateIdle,
		date:         truncateToDay(time.Now()),
		view:         ViewDay,
		appointments: make(map[int64]*domain.Appointment),
		daySelection: make([]int64, 0),
	}
}

// State возвращает текущее состояние автомата
func (b *Board) State() State {
	return b.state
}

// SetAppointments загружает набор записей, полученный из хранилища
// Заменяет текущее состояние доски целиком
func (b *Board) SetAppointments(appointments []*domain.Appointment) {
	b.appointments = make(map[int64]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		b.appointments[a.ID] = a
	}
}

// Appointment возвращает запись по ID
func (b *Board) Appointment(id int64) (*domain.Appointment, bool) {
	a, ok := b.appointments[id]
	return a, ok
}

// LayoutColumn рассчитывает расположение записей одного сотрудника на дату:
// активные записи раскладываются по колонкам без визуальных пересечений
func (b *Board) LayoutColumn(date time.Time, employeeID int64) ([]layout.Box, error) {
	column := make([]*domain.Appointment, 0)
	for _, a := range b.appointments {
		if a.EmployeeID == employeeID && sameDay(a.AppointmentDate, date) && a.IsActive() {
			column = append(column, a)
		}
	}
	return layout.Compute(column)
}

// StartDrag захватывает запись для переноса
// grabOffsetPixels - смещение указателя от верхней границы блока записи.
// Допустим только из состояния Idle: вложенные переносы невозможны
func (b *Board) StartDrag(appointmentID int64, grabOffsetPixels int) error {
	if b.state != StateIdle {
		b.logger.Error("Board.StartDrag: rejected in state %s", b.state)
		return fmt.Errorf("%w: startDrag in state %s", ErrInvalidState, b.state)
	}

	appointment, ok := b.appointments[appointmentID]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, appointmentID)
	}

	if !appointment.CanBeRescheduled() {
		return fmt.Errorf("%w: id=%d status=%s", ErrNotReschedulable, appointmentID, appointment.Status)
	}

	b.drag = &dragState{
		appointment:       appointment,
		grabOffsetMinutes: b.pixelsToMinutes(grabOffsetPixels),
	}
	b.state = StateDragging

	b.logger.Info("Board.StartDrag: appointment=%d, grabOffset=%dmin", appointmentID, b.drag.grabOffsetMinutes)
	return nil
}

// ComputeDropTarget переводит позицию указателя в целевой слот
// pointerPixels - вертикальная координата указателя в целевой колонке.
// Обратное преобразование time-to-pixel маппинга рендеринга: смещение точки
// захвата вычитается, чтобы позиция соответствовала началу записи, результат
// квантуется к шагу слотов
func (b *Board) ComputeDropTarget(pointerPixels int, targetDate time.Time, targetEmployeeID int64) (DropTarget, error) {
	if b.state != StateDragging {
		return DropTarget{}, fmt.Errorf("%w: computeDropTarget in state %s", ErrInvalidState, b.state)
	}

	startMinutes := b.pixelsToMinutes(pointerPixels) - b.drag.grabOffsetMinutes
	startMinutes = quantize(startMinutes, b.cfg.SlotGranularityMinutes)

	// Интервал должен оставаться внутри суток
	if startMinutes < 0 {
		startMinutes = 0
	}
	if max := 24*60 - b.drag.appointment.DurationMinutes; startMinutes > max {
		startMinutes = quantize(max, b.cfg.SlotGranularityMinutes)
	}

	startTime, err := types.NewTimeStringFromMinutes(startMinutes)
	if err != nil {
		return DropTarget{}, err
	}

	return DropTarget{
		Date:       targetDate,
		StartTime:  startTime,
		EmployeeID: targetEmployeeID,
	}, nil
}

// Drop завершает перетаскивание и создает PendingChange
// Переход Dragging → PendingConfirmation; длительность записи сохраняется
func (b *Board) Drop(target DropTarget) error {
	if b.state != StateDragging {
		b.logger.Error("Board.Drop: rejected in state %s", b.state)
		return fmt.Errorf("%w: drop in state %s", ErrInvalidState, b.state)
	}

	b.pending = &PendingChange{
		Appointment:        b.drag.appointment,
		ProposedEmployeeID: target.EmployeeID,
		ProposedDate:       target.Date,
		ProposedStart:      target.StartTime,
	}
	b.drag = nil
	b.state = StatePendingConfirmation

	b.logger.Info("Board.Drop: appointment=%d proposed employee=%d date=%s time=%s",
		b.pending.Appointment.ID, target.EmployeeID, target.Date.Format(domain.DateFormat), target.StartTime)
	return nil
}

// CancelDrag прерывает перетаскивание без создания PendingChange
func (b *Board) CancelDrag() error {
	if b.state != StateDragging {
		return fmt.Errorf("%w: cancelDrag in state %s", ErrInvalidState, b.state)
	}
	b.drag = nil
	b.state = StateIdle
	return nil
}

// Pending возвращает текущий неподтвержденный перенос
func (b *Board) Pending() *PendingChange {
	return b.pending
}

// PendingConflicts возвращает ID записей, конфликтующих с предлагаемым
// переносом, по локальному состоянию доски. Клиентская проверка для
// отзывчивости UI; авторитетная проверка остается за хранилищем
func (b *Board) PendingConflicts() ([]int64, error) {
	if b.pending == nil {
		return nil, ErrNoPendingChange
	}

	proposedEnd, err := b.pending.ProposedEnd()
	if err != nil {
		return nil, err
	}

	conflicts := make([]int64, 0)
	for _, a := range b.appointments {
		if a.ID == b.pending.Appointment.ID || !a.IsActive() {
			continue
		}
		if a.EmployeeID != b.pending.ProposedEmployeeID || !sameDay(a.AppointmentDate, b.pending.ProposedDate) {
			continue
		}

		aEnd, err := a.EndTime()
		if err != nil {
			continue
		}
		if domain.IntervalsOverlap(b.pending.ProposedStart, proposedEnd, a.StartTime, aEnd) {
			conflicts = append(conflicts, a.ID)
		}
	}

	return conflicts, nil
}

// Confirm фиксирует перенос во внешнем хранилище
// Переход PendingConfirmation → Committing → Idle. До успешного ответа
// локальное состояние не меняется: при любой ошибке (конфликт, сеть)
// предложение отбрасывается, запись остается на прежнем месте.
// Успешный ответ хранилища замещает запись целиком
func (b *Board) Confirm(ctx context.Context) (*domain.Appointment, error) {
	if b.state != StatePendingConfirmation {
		b.logger.Error("Board.Confirm: rejected in state %s", b.state)
		return nil, fmt.Errorf("%w: confirm in state %s", ErrInvalidState, b.state)
	}

	pending := b.pending
	b.state = StateCommitting

	updated, err := b.persistence.Reschedule(
		ctx,
		pending.Appointment.ID,
		pending.ProposedEmployeeID,
		pending.ProposedDate,
		pending.ProposedStart,
	)

	// Независимо от результата: PendingChange уничтожен, доска в Idle
	b.pending = nil
	b.state = StateIdle

	if err != nil {
		b.logger.Warn("Board.Confirm: commit failed for appointment=%d: %v", pending.Appointment.ID, err)
		return nil, err
	}

	b.appointments[updated.ID] = updated
	b.logger.Info("Board.Confirm: appointment=%d committed to employee=%d date=%s time=%s",
		updated.ID, updated.EmployeeID, updated.AppointmentDate.Format(domain.DateFormat), updated.StartTime)

	return updated, nil
}

// Cancel отменяет неподтвержденный перенос без обращения к хранилищу
func (b *Board) Cancel() error {
	if b.state != StatePendingConfirmation {
		return fmt.Errorf("%w: cancel in state %s", ErrInvalidState, b.state)
	}
	b.pending = nil
	b.state = StateIdle
	return nil
}

func (b *Board) pixelsToMinutes(pixels int) int {
	return pixels * 60 / b.cfg.PixelsPerHour
}

// quantize округляет minutes вниз к ближайшему шагу step
func quantize(minutes, step int) int {
	if minutes < 0 {
		// Для отрицательных значений округляем к меньшему слоту
		return -quantize(-minutes+step-1, step)
	}
	return minutes - minutes%step
}

func sameDay(a, t time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
