package view

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{90 * time.Minute, "1h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"same day", day.Add(9 * time.Hour), day.Add(17 * time.Hour), "09:00-17:00"},
		{"to midnight", day.Add(22 * time.Hour), day.Add(24 * time.Hour), "22:00-24:00"},
		{"overnight", day.Add(22 * time.Hour), day.Add(26 * time.Hour), "22:00-Jan 2 02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSpan(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatSpan() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayTitle(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got, want := DayTitle(day, day.Add(10*time.Hour)), "Monday, Jan 1 2024 (today)"; got != want {
		t.Errorf("DayTitle() = %q, want %q", got, want)
	}
	if got, want := DayTitle(day, day.AddDate(0, 0, 1)), "Monday, Jan 1 2024"; got != want {
		t.Errorf("DayTitle() = %q, want %q", got, want)
	}
}

func TestFitCell(t *testing.T) {
	if got := FitCell("Sarah", 10); got != "Sarah" {
		t.Errorf("FitCell short = %q", got)
	}
	if got, want := FitCell("Customer Service", 8), "Custome"+Ellipsis; got != want {
		t.Errorf("FitCell long = %q, want %q", got, want)
	}
	if got := FitCell("x", 0); got != "" {
		t.Errorf("FitCell zero width = %q", got)
	}
}
