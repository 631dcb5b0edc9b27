package history

import (
	"fmt"

	"github.com/javiermolinar/roster/internal/shift"
)

// UnknownName is shown when a name cannot be resolved.
const UnknownName = "Unknown"

// NameResolver maps employee and counter ids to display names.
// *shift.Directory implements it.
type NameResolver interface {
	EmployeeName(id string) (string, bool)
	CounterName(id string) (string, bool)
}

// Details builds the human readable description of a mutation.
// names may be nil.
func Details(action Action, oldShift, newShift *shift.Shift, names NameResolver) string {
	switch action {
	case ActionCreate:
		return fmt.Sprintf("Created new shift for %s at %s",
			employeeName(newShift, names), counterName(newShift, names))
	case ActionUpdate:
		if oldShift == nil || newShift == nil {
			return "Updated shift details"
		}
		if oldShift.CounterID != newShift.CounterID {
			return fmt.Sprintf("Moved from %s to %s",
				counterName(oldShift, names), counterName(newShift, names))
		}
		if oldShift.EmployeeID != newShift.EmployeeID {
			return fmt.Sprintf("Reassigned from %s to %s at %s",
				employeeName(oldShift, names), employeeName(newShift, names), counterName(newShift, names))
		}
		return fmt.Sprintf("Updated shift time for %s at %s",
			employeeName(newShift, names), counterName(newShift, names))
	case ActionDelete:
		return fmt.Sprintf("Deleted shift for %s at %s",
			employeeName(oldShift, names), counterName(oldShift, names))
	default:
		return "Modified shift"
	}
}

// employeeName prefers the directory, then the title prefix. The title is
// free text frozen at creation, so the directory is authoritative.
func employeeName(s *shift.Shift, names NameResolver) string {
	if s == nil {
		return UnknownName
	}
	if names != nil {
		if name, ok := names.EmployeeName(s.EmployeeID); ok {
			return name
		}
	}
	if name := s.EmployeeName(); name != "" {
		return name
	}
	return UnknownName
}

// counterName prefers the directory, then the shift location.
func counterName(s *shift.Shift, names NameResolver) string {
	if s == nil {
		return UnknownName
	}
	if names != nil {
		if name, ok := names.CounterName(s.CounterID); ok {
			return name
		}
	}
	if s.Location != "" {
		return s.Location
	}
	return UnknownName
}
