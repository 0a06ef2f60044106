package scheduler

import "time"

// View возвращает текущий режим отображения
func (b *Board) View() ViewMode {
	return b.view
}

// SetView переключает режим отображения
// Кэш выбранных сотрудников каждого режима сохраняется: возврат в дневной
// режим восстанавливает прежний мультивыбор, возврат в неделю/месяц -
// прежний одиночный выбор
func (b *Board) SetView(view ViewMode) {
	if view != ViewDay && view != ViewWeek && view != ViewMonth {
		return
	}
	b.view = view
}

// Date возвращает опорную дату доски
func (b *Board) Date() time.Time {
	return b.date
}

// SetDate устанавливает опорную дату доски
func (b *Board) SetDate(date time.Time) {
	b.date = truncateToDay(date)
}

// Navigate сдвигает опорную дату на один шаг текущего режима:
// день, неделя или месяц. direction +1 вперед, -1 назад
func (b *Board) Navigate(direction int) {
	if direction > 0 {
		direction = 1
	} else if direction < 0 {
		direction = -1
	} else {
		return
	}

	switch b.view {
	case ViewDay:
		b.date = b.date.AddDate(0, 0, direction)
	case ViewWeek:
		b.date = b.date.AddDate(0, 0, 7*direction)
	case ViewMonth:
		b.date = b.date.AddDate(0, direction, 0)
	}
}

// SelectedEmployees возвращает выбранных сотрудников текущего режима
// В дневном режиме - мультивыбор, в неделе/месяце - не более одного
func (b *Board) SelectedEmployees() []int64 {
	var src []int64
	if b.view == ViewDay {
		src = b.daySelection
	} else {
		src = b.weekSelection
	}

	out := make([]int64, len(src))
	copy(out, src)
	return out
}

// ToggleEmployee добавляет или убирает сотрудника из дневного мультивыбора
// Последнего выбранного сотрудника убрать нельзя: доска без колонок
// бессмысленна. Влияет только на кэш дневного режима
func (b *Board) ToggleEmployee(employeeID int64) {
	for i, id := range b.daySelection {
		if id == employeeID {
			if len(b.daySelection) == 1 {
				return
			}
			b.daySelection = append(b.daySelection[:i], b.daySelection[i+1:]...)
			return
		}
	}
	b.daySelection = append(b.daySelection, employeeID)
}

// SelectEmployee устанавливает единственного сотрудника для недели/месяца
// Влияет только на кэш недельного/месячного режима
func (b *Board) SelectEmployee(employeeID int64) {
	b.weekSelection = []int64{employeeID}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
