// Package plan loads a roster plan file and replays it into a session.
// Both the check command and the integration tests use it.
package plan

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/roster/internal/dateutil"
	"github.com/javiermolinar/roster/internal/shift"
)

// File is the TOML layout of a plan.
//
//	[[shifts]]
//	employee = "John Smith"
//	counter  = "1"
//	start    = "2024-01-01 09:00"
//	end      = "2024-01-01 17:00"
type File struct {
	Shifts []Entry `toml:"shifts"`
}

// Entry is one planned shift as written in the file. Employee and counter
// may be given by id or by name.
type Entry struct {
	Employee string `toml:"employee"`
	Counter  string `toml:"counter"`
	Start    string `toml:"start"`
	End      string `toml:"end"`
}

// Planned is an entry resolved against the directory.
type Planned struct {
	Index    int
	Employee shift.Employee
	Counter  shift.Counter
	Start    time.Time
	End      time.Time
}

// ValidationError reports one unusable plan entry.
type ValidationError struct {
	Index   int    // position of the entry in the file, from 1
	Field   string // "employee", "counter", "start", "end"
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("shift %d: %s: %s", e.Index, e.Field, e.Message)
}

// Load reads and parses a plan file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes plan TOML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return &f, nil
}

// Resolve turns the file entries into planned shifts. Entries that cannot be
// resolved are reported and skipped; the rest keep their file order.
func (f *File) Resolve(dir *shift.Directory) ([]Planned, []ValidationError) {
	var (
		planned []Planned
		errs    []ValidationError
	)
	for i, e := range f.Shifts {
		p, err := resolve(dir, i+1, e)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		planned = append(planned, p)
	}
	return planned, errs
}

func resolve(dir *shift.Directory, index int, e Entry) (Planned, *ValidationError) {
	fail := func(field, msg string) (Planned, *ValidationError) {
		return Planned{}, &ValidationError{Index: index, Field: field, Message: msg}
	}

	emp, ok := findEmployee(dir, e.Employee)
	if !ok {
		return fail("employee", fmt.Sprintf("unknown employee %q", e.Employee))
	}
	ctr, ok := findCounter(dir, e.Counter)
	if !ok {
		return fail("counter", fmt.Sprintf("unknown counter %q", e.Counter))
	}
	start, err := dateutil.ParseDateTime(e.Start)
	if err != nil {
		return fail("start", err.Error())
	}
	end, err := dateutil.ParseDateTime(e.End)
	if err != nil {
		return fail("end", err.Error())
	}
	if !start.Before(end) {
		return fail("end", "must be after start")
	}
	return Planned{Index: index, Employee: emp, Counter: ctr, Start: start, End: end}, nil
}

// findEmployee matches by id first, then by case-insensitive name.
func findEmployee(dir *shift.Directory, ref string) (shift.Employee, bool) {
	ref = strings.TrimSpace(ref)
	if e, err := dir.Employee(ref); err == nil {
		return e, true
	}
	for _, e := range dir.Employees() {
		if strings.EqualFold(e.Name, ref) {
			return e, true
		}
	}
	return shift.Employee{}, false
}

func findCounter(dir *shift.Directory, ref string) (shift.Counter, bool) {
	ref = strings.TrimSpace(ref)
	if c, err := dir.Counter(ref); err == nil {
		return c, true
	}
	for _, c := range dir.Counters() {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return shift.Counter{}, false
}
