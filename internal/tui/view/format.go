package view

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as "45m", "2h" or "1h 30m".
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatSpan formats [start, end) as "HH:MM-HH:MM". An end at the following
// midnight is shown as 24:00; a later end carries its date.
func FormatSpan(start, end time.Time) string {
	y, m, d := start.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())
	switch {
	case sameDay(start, end):
		return start.Format("15:04") + "-" + end.Format("15:04")
	case end.Equal(midnight):
		return start.Format("15:04") + "-24:00"
	default:
		return start.Format("15:04") + "-" + end.Format("Jan 2 15:04")
	}
}
