package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/roster/internal/shift"
)

func TestDetails(t *testing.T) {
	bakery := sample("1", "John", "Bakery", at(9, 0), at(10, 0))
	later := sample("1", "John", "Bakery", at(11, 0), at(12, 0))
	deli := sample("1", "John", "Deli", at(9, 0), at(10, 0))

	tests := []struct {
		name     string
		action   Action
		old, new *shift.Shift
		want     string
	}{
		{"create", ActionCreate, nil, bakery, "Created new shift for John at Bakery"},
		{"move", ActionUpdate, bakery, deli, "Moved from Bakery to Deli"},
		{"retime", ActionUpdate, bakery, later, "Updated shift time for John at Bakery"},
		{"reassign", ActionUpdate, bakery, sample("1", "Sarah", "Bakery", at(9, 0), at(10, 0)), "Reassigned from John to Sarah at Bakery"},
		{"delete", ActionDelete, bakery, nil, "Deleted shift for John at Bakery"},
		{"update missing snapshot", ActionUpdate, nil, bakery, "Updated shift details"},
		{"unknown action", Action("archive"), bakery, nil, "Modified shift"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Details(tt.action, tt.old, tt.new, nil))
		})
	}
}

func TestDetails_TitleWithoutSeparator(t *testing.T) {
	s := sample("1", "x", "Bakery", at(9, 0), at(10, 0))
	s.Title = "Night cover"
	s.Location = ""

	assert.Equal(t, "Created new shift for Night cover at Unknown", Details(ActionCreate, nil, s, nil))

	s.Title = ""
	assert.Equal(t, "Deleted shift for Unknown at Unknown", Details(ActionDelete, s, nil, nil))
}

func TestDetails_ResolvesNamesFromDirectory(t *testing.T) {
	dir, err := shift.NewDirectory(
		[]shift.Employee{{ID: "e-John", Name: "John Smith"}},
		[]shift.Counter{{ID: "c-Bakery", Name: "Bakery Counter"}},
	)
	require.NoError(t, err)

	s := sample("1", "John", "Bakery", at(9, 0), at(10, 0))
	assert.Equal(t, "Created new shift for John Smith at Bakery Counter", Details(ActionCreate, nil, s, dir))

	// Ids the directory does not know fall back to the title and location.
	moved := sample("1", "John", "Deli", at(9, 0), at(10, 0))
	assert.Equal(t, "Moved from Bakery Counter to Deli", Details(ActionUpdate, s, moved, dir))
}

func TestDetails_DirectoryWinsOverStaleTitle(t *testing.T) {
	dir, err := shift.NewDirectory(
		[]shift.Employee{{ID: "e-John", Name: "John Smith"}},
		[]shift.Counter{{ID: "c-Bakery", Name: "Bakery"}},
	)
	require.NoError(t, err)

	// The title was frozen before the employee was renamed.
	s := sample("1", "John", "Bakery", at(9, 0), at(10, 0))
	assert.Equal(t, "John - Bakery", s.Title)
	assert.Equal(t, "Deleted shift for John Smith at Bakery", Details(ActionDelete, s, nil, dir))

	require.NoError(t, dir.RemoveEmployee("e-John"))
	assert.Equal(t, "Deleted shift for John at Bakery", Details(ActionDelete, s, nil, dir))
}

func TestLedger_UsesNameResolver(t *testing.T) {
	dir, err := shift.NewDirectory(
		[]shift.Employee{{ID: "e-John", Name: "John Smith"}},
		[]shift.Counter{{ID: "c-Bakery", Name: "Bakery Counter"}},
	)
	require.NoError(t, err)
	l := newTestLedger(WithNames(dir))

	require.NoError(t, l.Append(ActionCreate, nil, sample("1", "John", "Bakery", at(9, 0), at(10, 0))))

	entry, _ := l.Last()
	assert.Equal(t, "John Smith", entry.EmployeeName)
	assert.Equal(t, "Bakery Counter", entry.CounterName)
}
