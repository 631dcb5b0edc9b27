package roster

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/shift"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func testDirectory(t *testing.T) *shift.Directory {
	t.Helper()
	dir, err := shift.NewDirectory(
		[]shift.Employee{
			{ID: "e1", Name: "John Smith", Position: "Cashier", Color: "#89b4fa"},
			{ID: "e2", Name: "Sarah Johnson", Position: "Manager", Color: "#f38ba8"},
		},
		[]shift.Counter{
			{ID: "c1", Name: "Checkout 1"},
			{ID: "c2", Name: "Bakery"},
		},
	)
	require.NoError(t, err)
	return dir
}

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// memRepo is a slice-backed shift.Repository.
type memRepo struct {
	shifts  []shift.Shift
	failOps map[string]error
}

func (m *memRepo) fail(op string) error {
	return m.failOps[op]
}

func (m *memRepo) Create(_ context.Context, s shift.Shift) error {
	if err := m.fail("create"); err != nil {
		return err
	}
	if shift.IndexByID(m.shifts, s.ID) >= 0 {
		return shift.ErrDuplicateShift
	}
	m.shifts = append(m.shifts, s)
	return nil
}

func (m *memRepo) Update(_ context.Context, s shift.Shift) error {
	if err := m.fail("update"); err != nil {
		return err
	}
	i := shift.IndexByID(m.shifts, s.ID)
	if i < 0 {
		return shift.ErrShiftNotFound
	}
	m.shifts[i] = s
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if err := m.fail("delete"); err != nil {
		return err
	}
	i := shift.IndexByID(m.shifts, id)
	if i < 0 {
		return shift.ErrShiftNotFound
	}
	m.shifts = slices.Delete(m.shifts, i, i+1)
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (shift.Shift, error) {
	i := shift.IndexByID(m.shifts, id)
	if i < 0 {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return m.shifts[i], nil
}

func (m *memRepo) List(context.Context) ([]shift.Shift, error) {
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	return shift.CloneAll(m.shifts), nil
}

func (m *memRepo) ListBetween(_ context.Context, start, end time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range m.shifts {
		if grid.Overlaps(start, end, s.Start, s.End) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) ListOverlapping(_ context.Context, counterID string, start, end time.Time) ([]shift.Shift, error) {
	return grid.Overlapping(m.shifts, counterID, start, end), nil
}

func (m *memRepo) Count(context.Context) (int, error) {
	return len(m.shifts), nil
}

func (m *memRepo) Close() error { return nil }
