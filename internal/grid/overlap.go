package grid

import (
	"time"

	"github.com/javiermolinar/roster/internal/shift"
)

// Overlaps returns true if two half-open time ranges intersect.
// Two ranges overlap if: aStart < bEnd AND bStart < aEnd
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Occupies reports whether s is on counterID and intersects [start, end).
// Shifts without a positive duration never occupy anything.
func Occupies(s shift.Shift, counterID string, start, end time.Time) bool {
	if s.CounterID != counterID || s.IsDegenerate() {
		return false
	}
	return Overlaps(start, end, s.Start, s.End)
}

// Overlapping returns every shift on counterID that intersects [start, end),
// in input order. A window with no matches yields an empty slice.
func Overlapping(shifts []shift.Shift, counterID string, start, end time.Time) []shift.Shift {
	matches := []shift.Shift{}
	for _, s := range shifts {
		if Occupies(s, counterID, start, end) {
			matches = append(matches, s)
		}
	}
	return matches
}

// FindOverlapping returns the shifts occupying the cell of counterID that
// starts at slotStart and lasts intervalMinutes.
func FindOverlapping(shifts []shift.Shift, counterID string, slotStart time.Time, intervalMinutes int) []shift.Shift {
	slotEnd := slotStart.Add(time.Duration(intervalMinutes) * time.Minute)
	return Overlapping(shifts, counterID, slotStart, slotEnd)
}

// OnDay returns the shifts of any counter that intersect the day containing day.
func OnDay(shifts []shift.Shift, day time.Time) []shift.Shift {
	start := DayStart(day)
	end := start.AddDate(0, 0, 1)
	out := []shift.Shift{}
	for _, s := range shifts {
		if !s.IsDegenerate() && Overlaps(start, end, s.Start, s.End) {
			out = append(out, s)
		}
	}
	return out
}
