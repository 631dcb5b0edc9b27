// Package grid partitions a day into slots and answers which shifts occupy
// a (counter, slot) cell.
package grid

import (
	"slices"
	"time"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// DefaultInterval is the slot width used when none is configured.
	DefaultInterval = 60
)

// AllowedIntervals lists the supported slot widths in minutes.
var AllowedIntervals = []int{15, 30, 45, 60, 120, 240, 480}

// Slot is a half-open [Start, End) window of the day.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the width of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Label formats the slot as "HH:MM".
func (s Slot) Label() string {
	return SlotLabel(s.Start)
}

// ValidInterval reports whether minutes is one of AllowedIntervals.
func ValidInterval(minutes int) bool {
	return slices.Contains(AllowedIntervals, minutes)
}

// DayStart returns local midnight of the day containing t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SlotCount returns ceil(1440 / intervalMinutes), or 0 for a non-positive interval.
func SlotCount(intervalMinutes int) int {
	if intervalMinutes <= 0 {
		return 0
	}
	return (MinutesPerDay + intervalMinutes - 1) / intervalMinutes
}

// BuildSlots returns the slot start times for day, beginning at local
// midnight and spaced intervalMinutes apart. The slots cover the whole day;
// when the interval does not divide 1440 the last slot is shorter.
func BuildSlots(day time.Time, intervalMinutes int) []time.Time {
	n := SlotCount(intervalMinutes)
	if n == 0 {
		return nil
	}
	start := DayStart(day)
	step := time.Duration(intervalMinutes) * time.Minute
	out := make([]time.Time, n)
	for i := range n {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out
}

// Slots is BuildSlots with end times. The last slot is clipped to the end
// of the day.
func Slots(day time.Time, intervalMinutes int) []Slot {
	starts := BuildSlots(day, intervalMinutes)
	if starts == nil {
		return nil
	}
	dayEnd := DayStart(day).Add(MinutesPerDay * time.Minute)
	step := time.Duration(intervalMinutes) * time.Minute
	out := make([]Slot, len(starts))
	for i, s := range starts {
		end := s.Add(step)
		if end.After(dayEnd) {
			end = dayEnd
		}
		out[i] = Slot{Start: s, End: end}
	}
	return out
}

// SlotIndex returns the index of the slot of day that contains t,
// or -1 if t falls outside the day.
func SlotIndex(day, t time.Time, intervalMinutes int) int {
	if intervalMinutes <= 0 {
		return -1
	}
	offset := t.Sub(DayStart(day))
	if offset < 0 || offset >= MinutesPerDay*time.Minute {
		return -1
	}
	return int(offset / (time.Duration(intervalMinutes) * time.Minute))
}

// Snap floors t to the start of the slot that contains it.
func Snap(t time.Time, intervalMinutes int) time.Time {
	if intervalMinutes <= 0 {
		return t
	}
	start := DayStart(t)
	step := time.Duration(intervalMinutes) * time.Minute
	return start.Add(t.Sub(start) / step * step)
}

// StepInterval moves step positions through AllowedIntervals, wrapping at
// both ends. An unknown current interval starts from the smallest allowed
// interval that is not below it.
func StepInterval(current, step int) int {
	i := slices.Index(AllowedIntervals, current)
	if i < 0 {
		i = len(AllowedIntervals) - 1
		for j, m := range AllowedIntervals {
			if m >= current {
				i = j
				break
			}
		}
		if step == 0 {
			return AllowedIntervals[i]
		}
	}
	n := len(AllowedIntervals)
	return AllowedIntervals[((i+step)%n+n)%n]
}

// SlotLabel formats a slot start as "HH:MM".
func SlotLabel(t time.Time) string {
	return t.Format("15:04")
}
