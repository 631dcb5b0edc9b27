package plan

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/shift"
)

// Dispatcher is the part of a session that Apply needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd roster.Command) (roster.Result, error)
}

var _ Dispatcher = (*roster.Session)(nil)

// Applied is a planned shift after it was dispatched.
type Applied struct {
	Planned
	Shift     shift.Shift
	Conflicts []shift.Shift
}

// Report is the outcome of replaying a plan.
type Report struct {
	Applied []Applied
	Invalid []ValidationError
}

// Apply dispatches every planned shift as a create command. Overlaps are
// collected, never rejected. A dispatch error aborts the replay.
func Apply(ctx context.Context, d Dispatcher, planned []Planned) (*Report, error) {
	r := &Report{}
	for _, p := range planned {
		res, err := d.Dispatch(ctx, roster.CreateShift{
			EmployeeID: p.Employee.ID,
			CounterID:  p.Counter.ID,
			Start:      p.Start,
			End:        p.End,
		})
		if err != nil {
			return r, fmt.Errorf("shift %d: %w", p.Index, err)
		}
		r.Applied = append(r.Applied, Applied{Planned: p, Shift: *res.New, Conflicts: res.Conflicts})
	}
	return r, nil
}

// ConflictCount returns the number of applied shifts that overlap another
// employee.
func (r *Report) ConflictCount() int {
	n := 0
	for _, a := range r.Applied {
		if len(a.Conflicts) > 0 {
			n++
		}
	}
	return n
}

// ConflictsByCounter groups the conflicting applied shifts by counter id.
func (r *Report) ConflictsByCounter() map[string][]Applied {
	out := map[string][]Applied{}
	for _, a := range r.Applied {
		if len(a.Conflicts) > 0 {
			out[a.Counter.ID] = append(out[a.Counter.ID], a)
		}
	}
	return out
}

// Days returns the distinct days touched by applied shifts, in order.
func (r *Report) Days() []time.Time {
	var days []time.Time
	for _, a := range r.Applied {
		for d := grid.DayStart(a.Shift.Start); d.Before(a.Shift.End); d = d.AddDate(0, 0, 1) {
			if !slices.ContainsFunc(days, d.Equal) {
				days = append(days, d)
			}
		}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}

// Shifts returns the applied shifts in dispatch order.
func (r *Report) Shifts() []shift.Shift {
	out := make([]shift.Shift, len(r.Applied))
	for i, a := range r.Applied {
		out[i] = a.Shift
	}
	return out
}

// Coverage is the occupancy of one counter on one day.
type Coverage struct {
	Counter  shift.Counter
	Occupied int
	Total    int
}

// Ratio returns the share of occupied slots.
func (c Coverage) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Occupied) / float64(c.Total)
}

// DayCoverage counts, per counter, the slots of day that at least one shift
// occupies.
func DayCoverage(shifts []shift.Shift, counters []shift.Counter, day time.Time, intervalMinutes int) []Coverage {
	slots := grid.Slots(day, intervalMinutes)
	out := make([]Coverage, 0, len(counters))
	for _, c := range counters {
		cov := Coverage{Counter: c, Total: len(slots)}
		for _, s := range slots {
			if len(grid.Overlapping(shifts, c.ID, s.Start, s.End)) > 0 {
				cov.Occupied++
			}
		}
		out = append(out, cov)
	}
	return out
}
