package view

import (
	"time"
)

// TimeColumnLabel heads the slot label column.
const TimeColumnLabel = "Time"

// DayTitle formats the title bar date, marking today.
func DayTitle(day, today time.Time) string {
	label := day.Format("Monday, Jan 2 2006")
	if sameDay(day, today) {
		label += " (today)"
	}
	return label
}

// HeaderLabels returns the column headers: the time column followed by one
// column per counter name.
func HeaderLabels(counters []string, colWidth int) []string {
	labels := make([]string, 0, len(counters)+1)
	labels = append(labels, TimeColumnLabel)
	for _, name := range counters {
		labels = append(labels, FitCell(name, colWidth))
	}
	return labels
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
