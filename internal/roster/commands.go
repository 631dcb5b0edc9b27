// Package roster turns user intents into shift mutations. Commands are
// reduced against the current shifts, recorded in the history ledger and
// written to the repository by a Session.
package roster

import (
	"log/slog"
	"time"
)

// Command is a shift mutation request.
type Command interface {
	// Name is the command kind used in logs.
	Name() string
}

// CreateShift assigns an employee to a counter. ID is generated when empty.
type CreateShift struct {
	ID         string
	EmployeeID string
	CounterID  string
	Start      time.Time
	End        time.Time
}

// MoveShift places an existing shift at a new start on a counter, keeping
// its duration. An empty CounterID keeps the current counter.
type MoveShift struct {
	ShiftID   string
	CounterID string
	Start     time.Time
}

// UpdateShift changes the times of a shift. A non-empty EmployeeID or
// CounterID also reassigns it.
type UpdateShift struct {
	ShiftID    string
	Start      time.Time
	End        time.Time
	EmployeeID string
	CounterID  string
}

// DeleteShift removes a shift.
type DeleteShift struct {
	ShiftID string
}

func (CreateShift) Name() string { return "create_shift" }
func (MoveShift) Name() string   { return "move_shift" }
func (UpdateShift) Name() string { return "update_shift" }
func (DeleteShift) Name() string { return "delete_shift" }

func (c CreateShift) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("employee", c.EmployeeID),
		slog.String("counter", c.CounterID),
		slog.Time("start", c.Start),
		slog.Time("end", c.End),
	)
}

func (c MoveShift) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("shift", c.ShiftID),
		slog.String("counter", c.CounterID),
		slog.Time("start", c.Start),
	)
}

func (c UpdateShift) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("shift", c.ShiftID),
		slog.Time("start", c.Start),
		slog.Time("end", c.End),
	}
	if c.EmployeeID != "" {
		attrs = append(attrs, slog.String("employee", c.EmployeeID))
	}
	if c.CounterID != "" {
		attrs = append(attrs, slog.String("counter", c.CounterID))
	}
	return slog.GroupValue(attrs...)
}

func (c DeleteShift) LogValue() slog.Value {
	return slog.GroupValue(slog.String("shift", c.ShiftID))
}
