// Package shift defines the core roster types: calendar events, shifts,
// employees, counters and the repository contract.
package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEndBeforeStart  = errors.New("shift end must be after start")
	ErrMissingEmployee = errors.New("shift must reference an employee")
	ErrMissingCounter  = errors.New("shift must reference a counter")
	ErrMissingID       = errors.New("shift must have an id")
)

// Domain errors.
var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrDuplicateShift   = errors.New("shift id already exists")
	ErrDuplicateID      = errors.New("id already exists")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCounterNotFound  = errors.New("counter not found")
)

// TitleSeparator splits a shift title into employee and counter parts.
const TitleSeparator = " - "

// Event holds the calendar fields shared by anything drawn on the grid.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Color       string
	Description string
	Location    string
}

// Shift assigns one employee to one counter for [Start, End).
type Shift struct {
	Event
	EmployeeID string
	CounterID  string
}

// New builds a shift for the given employee and counter, deriving the
// display fields from them.
func New(id string, emp Employee, ctr Counter, start, end time.Time) (Shift, error) {
	s := Shift{
		Event: Event{
			ID:    id,
			Start: start,
			End:   end,
		},
		EmployeeID: emp.ID,
		CounterID:  ctr.ID,
	}
	s.Decorate(emp, ctr)
	if err := s.Validate(); err != nil {
		return Shift{}, err
	}
	return s, nil
}

// Decorate recomputes the cosmetic fields from the employee and counter.
func (s *Shift) Decorate(emp Employee, ctr Counter) {
	s.Title = emp.Name + TitleSeparator + ctr.Name
	s.Location = ctr.Name
	s.Color = emp.Color
	if emp.Position != "" {
		s.Description = fmt.Sprintf("%s working at %s", emp.Position, ctr.Name)
	} else {
		s.Description = ""
	}
}

// Validate checks the shift invariants.
func (s Shift) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	if s.EmployeeID == "" {
		return ErrMissingEmployee
	}
	if s.CounterID == "" {
		return ErrMissingCounter
	}
	if s.IsDegenerate() {
		return fmt.Errorf("%w: %s-%s", ErrEndBeforeStart,
			s.Start.Format("2006-01-02 15:04"), s.End.Format("2006-01-02 15:04"))
	}
	return nil
}

// Clone returns an independent copy of the shift.
func (s Shift) Clone() Shift {
	return s
}

// Ptr returns a pointer to a copy of the shift.
func (s Shift) Ptr() *Shift {
	c := s.Clone()
	return &c
}

// Duration returns the length of the shift.
func (s Shift) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsDegenerate reports whether the shift has no positive duration.
func (s Shift) IsDegenerate() bool {
	return !s.Start.Before(s.End)
}

// EmployeeName returns the part of the title before the separator.
// It is a display convenience; Directory.EmployeeName is authoritative.
func (s Shift) EmployeeName() string {
	name, _, _ := strings.Cut(s.Title, TitleSeparator)
	return name
}

// Timespan formats the shift as "HH:MM-HH:MM".
func (s Shift) Timespan() string {
	return s.Start.Format("15:04") + "-" + s.End.Format("15:04")
}

// IndexByID returns the position of the shift with the given id, or -1.
func IndexByID(shifts []Shift, id string) int {
	for i, s := range shifts {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CloneAll copies a slice of shifts.
func CloneAll(shifts []Shift) []Shift {
	if shifts == nil {
		return nil
	}
	out := make([]Shift, len(shifts))
	copy(out, shifts)
	return out
}
