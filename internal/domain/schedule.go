package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WorkInterval represents one employee's working window for one weekday.
// Invariant: StartTime < EndTime. A weekday may carry several intervals
// (split shifts); availability lookups use the first match.
type WorkInterval struct {
	ID         int64
	EmployeeID int64
	Weekday    time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsTimeOff  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWorkable returns true if the interval represents actual working time
func (w *WorkInterval) IsWorkable() bool {
	return !w.IsTimeOff && w.StartTime.IsBefore(w.EndTime)
}

// Contains reports whether the half-open interval [start, end) lies fully
// inside the working window
func (w *WorkInterval) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}
