package roster

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/shift"
)

// Reducer errors.
var (
	ErrShiftNotFound  = shift.ErrShiftNotFound
	ErrUnknownCommand = errors.New("unknown command")
)

// Result is the outcome of applying a command.
type Result struct {
	// Shifts is the complete new state.
	Shifts []shift.Shift
	Action history.Action
	Old    *shift.Shift
	New    *shift.Shift
	// Conflicts are shifts of other employees overlapping New on its counter.
	// They are warnings only.
	Conflicts []shift.Shift
}

// Reducer applies commands to a shift list without side effects.
type Reducer struct {
	Directory *shift.Directory
	NewID     func() string
}

// Apply returns the state after cmd. The input slice is not modified.
func (r Reducer) Apply(state []shift.Shift, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case CreateShift:
		return r.create(state, c)
	case MoveShift:
		return r.move(state, c)
	case UpdateShift:
		return r.update(state, c)
	case DeleteShift:
		return r.delete(state, c)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (r Reducer) create(state []shift.Shift, c CreateShift) (Result, error) {
	emp, err := r.employee(c.EmployeeID)
	if err != nil {
		return Result{}, err
	}
	ctr, err := r.counter(c.CounterID)
	if err != nil {
		return Result{}, err
	}

	id := c.ID
	if id == "" {
		id = r.newID()
	}
	if shift.IndexByID(state, id) >= 0 {
		return Result{}, fmt.Errorf("%w: %q", shift.ErrDuplicateShift, id)
	}

	s, err := shift.New(id, emp, ctr, c.Start, c.End)
	if err != nil {
		return Result{}, err
	}

	next := append(shift.CloneAll(state), s)
	return result(next, history.ActionCreate, nil, &s), nil
}

func (r Reducer) move(state []shift.Shift, c MoveShift) (Result, error) {
	i, err := find(state, c.ShiftID)
	if err != nil {
		return Result{}, err
	}
	old := state[i]

	moved := old.Clone()
	moved.Start = c.Start
	moved.End = c.Start.Add(old.Duration())
	if c.CounterID != "" && c.CounterID != old.CounterID {
		ctr, err := r.counter(c.CounterID)
		if err != nil {
			return Result{}, err
		}
		moved.CounterID = ctr.ID
		moved.Decorate(r.employeeOrTitle(old), ctr)
	}
	if err := moved.Validate(); err != nil {
		return Result{}, err
	}

	next := shift.CloneAll(state)
	next[i] = moved
	return result(next, history.ActionUpdate, &old, &moved), nil
}

func (r Reducer) update(state []shift.Shift, c UpdateShift) (Result, error) {
	i, err := find(state, c.ShiftID)
	if err != nil {
		return Result{}, err
	}
	old := state[i]

	updated := old.Clone()
	updated.Start = c.Start
	updated.End = c.End
	if err := r.reassign(&updated, c.EmployeeID, c.CounterID); err != nil {
		return Result{}, err
	}
	if err := updated.Validate(); err != nil {
		return Result{}, err
	}

	next := shift.CloneAll(state)
	next[i] = updated
	return result(next, history.ActionUpdate, &old, &updated), nil
}

func (r Reducer) delete(state []shift.Shift, c DeleteShift) (Result, error) {
	i, err := find(state, c.ShiftID)
	if err != nil {
		return Result{}, err
	}
	old := state[i]

	next := slices.Delete(shift.CloneAll(state), i, i+1)
	return Result{
		Shifts: next,
		Action: history.ActionDelete,
		Old:    &old,
	}, nil
}

// Revert applies an undo outcome to state: a create is dropped, an update
// restores the old snapshot and a delete re-appends the old snapshot.
func Revert(state []shift.Shift, out history.Outcome) []shift.Shift {
	next := shift.CloneAll(state)
	if !out.Success {
		return next
	}
	switch out.Action {
	case history.ActionCreate:
		if out.NewShift != nil {
			if i := shift.IndexByID(next, out.NewShift.ID); i >= 0 {
				next = slices.Delete(next, i, i+1)
			}
		}
	case history.ActionUpdate:
		if out.OldShift != nil {
			if i := shift.IndexByID(next, out.OldShift.ID); i >= 0 {
				next[i] = out.OldShift.Clone()
			}
		}
	case history.ActionDelete:
		if out.OldShift != nil && shift.IndexByID(next, out.OldShift.ID) < 0 {
			next = append(next, out.OldShift.Clone())
		}
	}
	return next
}

// reassign points s at another employee or counter and re-derives its
// display fields. Empty ids keep the current assignment.
func (r Reducer) reassign(s *shift.Shift, employeeID, counterID string) error {
	changed := false
	if employeeID != "" && employeeID != s.EmployeeID {
		if _, err := r.employee(employeeID); err != nil {
			return err
		}
		s.EmployeeID = employeeID
		changed = true
	}
	if counterID != "" && counterID != s.CounterID {
		if _, err := r.counter(counterID); err != nil {
			return err
		}
		s.CounterID = counterID
		changed = true
	}
	if !changed {
		return nil
	}
	ctr, err := r.counter(s.CounterID)
	if err != nil {
		ctr = shift.Counter{ID: s.CounterID, Name: s.Location}
	}
	s.Decorate(r.employeeOrTitle(*s), ctr)
	return nil
}

func result(next []shift.Shift, action history.Action, old, s *shift.Shift) Result {
	matches := grid.Overlapping(next, s.CounterID, s.Start, s.End)
	return Result{
		Shifts:    next,
		Action:    action,
		Old:       old,
		New:       s,
		Conflicts: grid.Conflicts(matches, *s),
	}
}

func find(state []shift.Shift, id string) (int, error) {
	i := shift.IndexByID(state, id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrShiftNotFound, id)
	}
	return i, nil
}

func (r Reducer) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

func (r Reducer) employee(id string) (shift.Employee, error) {
	if r.Directory == nil {
		return shift.Employee{}, fmt.Errorf("%w: %q", shift.ErrEmployeeNotFound, id)
	}
	return r.Directory.Employee(id)
}

func (r Reducer) counter(id string) (shift.Counter, error) {
	if r.Directory == nil {
		return shift.Counter{}, fmt.Errorf("%w: %q", shift.ErrCounterNotFound, id)
	}
	return r.Directory.Counter(id)
}

// employeeOrTitle falls back to the shift's own display fields when the
// employee has left the directory.
func (r Reducer) employeeOrTitle(s shift.Shift) shift.Employee {
	if emp, err := r.employee(s.EmployeeID); err == nil {
		return emp
	}
	return shift.Employee{ID: s.EmployeeID, Name: s.EmployeeName(), Color: s.Color}
}
