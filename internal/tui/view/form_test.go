package view

import (
	"strings"
	"testing"
)

func TestRenderShiftForm_MarksSelectedEmployee(t *testing.T) {
	f := ShiftForm{
		Counter:   "Bakery",
		Start:     "09:00",
		Employees: []string{"John Smith", "Sarah Johnson"},
		Employee:  1,
		Durations: []string{"1h", "2h"},
	}

	out := RenderShiftForm(f, ModalStyles{})

	if !strings.Contains(out, "> Sarah Johnson") {
		t.Fatalf("expected selected marker on Sarah: %q", out)
	}
	if strings.Contains(out, "> John Smith") {
		t.Fatalf("unexpected marker on John: %q", out)
	}
}

func TestRenderShiftForm_SelectableCounter(t *testing.T) {
	f := ShiftForm{
		Counter:      "Bakery",
		Start:        "09:00",
		Employees:    []string{"John Smith"},
		Durations:    []string{"1h"},
		Counters:     []string{"Checkout 1", "Bakery"},
		CounterIndex: 1,
		Focus:        FormFieldCounter,
	}

	out := RenderShiftForm(f, ModalStyles{})

	if !strings.Contains(out, "‹ Bakery ›") {
		t.Fatalf("expected counter selector: %q", out)
	}
	if strings.Contains(out, "Counter  Bakery") {
		t.Fatalf("fixed counter label shown with a selector: %q", out)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, selected, size int
		first, last       int
	}{
		{5, 0, 10, 0, 5},
		{10, 0, 4, 0, 4},
		{10, 5, 4, 3, 7},
		{10, 9, 4, 6, 10},
	}
	for _, tt := range tests {
		first, last := window(tt.n, tt.selected, tt.size)
		if first != tt.first || last != tt.last {
			t.Errorf("window(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.n, tt.selected, tt.size, first, last, tt.first, tt.last)
		}
	}
}
