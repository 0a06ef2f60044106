// Package layout packs possibly-overlapping appointments into side-by-side
// columns for time-grid rendering. It is a pure computation: inputs are never
// mutated and the output carries no cross-render identity.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInterval возвращается, когда запись имеет некорректный интервал
	ErrInvalidInterval = errors.New("layout: appointment has invalid time interval")
)

// Box describes the horizontal placement of one appointment inside a
// rendering column. Recomputed on every render pass; never persisted.
type Box struct {
	AppointmentID int64
	Column        int
	LeftPercent   float64
	WidthPercent  float64
}

type item struct {
	id    int64
	start int // minutes since midnight
	end   int // exclusive
}

// Compute assigns a column and horizontal extent to every appointment so
// that overlapping appointments never visually collide.
//
// Column assignment is greedy interval partitioning: appointments sorted by
// (start, id) are placed into the lowest-numbered column whose occupant has
// already ended. Two appointments conflict iff their half-open intervals
// overlap; touching endpoints share a column.
//
// The width of each appointment is 100/k, where k is the maximum number of
// simultaneously active appointments at any instant within that
// appointment's own interval. An isolated appointment is always full width
// even when the grid needs more columns elsewhere.
//
// The result is deterministic for a fixed input set regardless of input
// order: ties on start time are broken by appointment ID.
func Compute(appointments []*domain.Appointment) ([]Box, error) {
	items := make([]item, 0, len(appointments))
	for _, a := range appointments {
		start, err := a.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: appointment id=%d: %v", ErrInvalidInterval, a.ID, err)
		}
		if a.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: appointment id=%d has duration %d", ErrInvalidInterval, a.ID, a.DurationMinutes)
		}
		items = append(items, item{id: a.ID, start: start, end: start + a.DurationMinutes})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].start != items[j].start {
			return items[i].start < items[j].start
		}
		return items[i].id < items[j].id
	})

	columns := assignColumns(items)

	boxes := make([]Box, len(items))
	for i, it := range items {
		k := maxConcurrency(items, it)
		width := 100.0 / float64(k)
		boxes[i] = Box{
			AppointmentID: it.id,
			Column:        columns[i],
			LeftPercent:   float64(columns[i]) * width,
			WidthPercent:  width,
		}
	}

	return boxes, nil
}

// assignColumns packs items (sorted by start) into columns. columnEnds holds
// the end time of each column's current occupant; a column is free once its
// occupant has ended (end <= start, half-open semantics).
func assignColumns(items []item) []int {
	assigned := make([]int, len(items))
	columnEnds := make([]int, 0, 4)

	for i, it := range items {
		placed := false
		for col, end := range columnEnds {
			if end <= it.start {
				columnEnds[col] = it.end
				assigned[i] = col
				placed = true
				break
			}
		}
		if !placed {
			columnEnds = append(columnEnds, it.end)
			assigned[i] = len(columnEnds) - 1
		}
	}

	return assigned
}

// maxConcurrency returns the maximum number of items simultaneously active
// at any instant within [target.start, target.end). Concurrency can only
// change when some item starts, so checking those instants is sufficient.
func maxConcurrency(items []item, target item) int {
	max := 0
	for _, probe := range items {
		if probe.start < target.start || probe.start >= target.end {
			continue
		}
		if c := concurrencyAt(items, probe.start); c > max {
			max = c
		}
	}
	// target.start itself: covers the case where every overlapping item
	// started before the target did
	if c := concurrencyAt(items, target.start); c > max {
		max = c
	}
	return max
}

func concurrencyAt(items []item, instant int) int {
	count := 0
	for _, it := range items {
		if it.start <= instant && instant < it.end {
			count++
		}
	}
	return count
}
