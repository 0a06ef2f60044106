package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var intervalColumns = []string{
	"id",
	"employee_id",
	"weekday",
	"start_time",
	"end_time",
	"is_time_off",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения рабочих расписаний сотрудников
// Расписания создаются и редактируются внешним UI управления графиками;
// движок расписания их только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmployeeAndWeekday получает рабочие интервалы сотрудника на день недели
// Сортировка по id сохраняет порядок создания: при разрывных сменах
// авторитетен первый интервал
func (r *Repository) GetByEmployeeAndWeekday(ctx context.Context, employeeID int64, weekday time.Weekday) ([]*domain.WorkInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("work_intervals").
		Where(squirrel.Eq{
			"employee_id": employeeID,
			"weekday":     int(weekday),
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// GetByEmployee получает все рабочие интервалы сотрудника на неделю
func (r *Repository) GetByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("work_intervals").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("weekday ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

func scanIntervals(rows *sql.Rows) ([]*domain.WorkInterval, error) {
	intervals := make([]*domain.WorkInterval, 0)

	for rows.Next() {
		var interval domain.WorkInterval
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&interval.ID,
			&interval.EmployeeID,
			&weekday,
			&interval.StartTime,
			&interval.EndTime,
			&interval.IsTimeOff,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan work interval: %v", ErrScanRow, err)
		}

		interval.Weekday = time.Weekday(weekday)
		interval.CreatedAt = createdAt.Time
		interval.UpdatedAt = updatedAt.Time

		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}
