package grid

import "github.com/javiermolinar/roster/internal/shift"

// HasConflict reports whether any match belongs to another employee.
// The candidate itself and shifts of the same employee never conflict.
// Conflicts are advisory: callers warn and still accept the write.
func HasConflict(matches []shift.Shift, candidate shift.Shift) bool {
	for _, m := range matches {
		if conflicts(m, candidate) {
			return true
		}
	}
	return false
}

// Conflicts returns the matches that conflict with candidate.
func Conflicts(matches []shift.Shift, candidate shift.Shift) []shift.Shift {
	var out []shift.Shift
	for _, m := range matches {
		if conflicts(m, candidate) {
			out = append(out, m)
		}
	}
	return out
}

// CellConflict reports whether any pair of shifts in one cell conflicts.
func CellConflict(matches []shift.Shift) bool {
	for _, m := range matches {
		if HasConflict(matches, m) {
			return true
		}
	}
	return false
}

func conflicts(m, candidate shift.Shift) bool {
	return m.ID != candidate.ID && m.EmployeeID != candidate.EmployeeID
}
