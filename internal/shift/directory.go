package shift

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Employee is a member of staff who can be put on a counter.
type Employee struct {
	ID       string `toml:"id" validate:"required"`
	Name     string `toml:"name" validate:"required"`
	Position string `toml:"position"`
	Color    string `toml:"color" validate:"omitempty,hexcolor"`
}

// Counter is a work station that shifts are assigned to.
type Counter struct {
	ID          string `toml:"id" validate:"required"`
	Name        string `toml:"name" validate:"required"`
	Description string `toml:"description"`
}

// Directory is the in-session list of employees and counters.
// Order is preserved so the grid columns stay stable. It is safe for
// concurrent use.
type Directory struct {
	mu        sync.RWMutex
	validate  *validator.Validate
	employees []Employee
	counters  []Counter
}

// NewDirectory builds a directory, validating every entry.
func NewDirectory(employees []Employee, counters []Counter) (*Directory, error) {
	d := &Directory{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, e := range employees {
		if err := d.AddEmployee(e); err != nil {
			return nil, err
		}
	}
	for _, c := range counters {
		if err := d.AddCounter(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Employees returns a copy of the employee list.
func (d *Directory) Employees() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.employees)
}

// Counters returns a copy of the counter list.
func (d *Directory) Counters() []Counter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.counters)
}

// Employee looks up an employee by id.
func (d *Directory) Employee(id string) (Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.employeeIndex(id)
	if i < 0 {
		return Employee{}, fmt.Errorf("%w: %q", ErrEmployeeNotFound, id)
	}
	return d.employees[i], nil
}

// Counter looks up a counter by id.
func (d *Directory) Counter(id string) (Counter, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.counterIndex(id)
	if i < 0 {
		return Counter{}, fmt.Errorf("%w: %q", ErrCounterNotFound, id)
	}
	return d.counters[i], nil
}

// AddEmployee appends a new employee.
func (d *Directory) AddEmployee(e Employee) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate.Struct(e); err != nil {
		return fmt.Errorf("invalid employee %q: %w", e.ID, err)
	}
	if d.employeeIndex(e.ID) >= 0 {
		return fmt.Errorf("%w: employee %q", ErrDuplicateID, e.ID)
	}
	d.employees = append(d.employees, e)
	return nil
}

// UpdateEmployee replaces the employee with the same id.
func (d *Directory) UpdateEmployee(e Employee) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate.Struct(e); err != nil {
		return fmt.Errorf("invalid employee %q: %w", e.ID, err)
	}
	i := d.employeeIndex(e.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrEmployeeNotFound, e.ID)
	}
	d.employees[i] = e
	return nil
}

// RemoveEmployee deletes an employee. Existing shifts keep their id.
func (d *Directory) RemoveEmployee(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.employeeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrEmployeeNotFound, id)
	}
	d.employees = slices.Delete(d.employees, i, i+1)
	return nil
}

// AddCounter appends a new counter.
func (d *Directory) AddCounter(c Counter) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate.Struct(c); err != nil {
		return fmt.Errorf("invalid counter %q: %w", c.ID, err)
	}
	if d.counterIndex(c.ID) >= 0 {
		return fmt.Errorf("%w: counter %q", ErrDuplicateID, c.ID)
	}
	d.counters = append(d.counters, c)
	return nil
}

// UpdateCounter replaces the counter with the same id.
func (d *Directory) UpdateCounter(c Counter) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate.Struct(c); err != nil {
		return fmt.Errorf("invalid counter %q: %w", c.ID, err)
	}
	i := d.counterIndex(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrCounterNotFound, c.ID)
	}
	d.counters[i] = c
	return nil
}

// RemoveCounter deletes a counter.
func (d *Directory) RemoveCounter(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.counterIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrCounterNotFound, id)
	}
	d.counters = slices.Delete(d.counters, i, i+1)
	return nil
}

// EmployeeName resolves an employee id to a display name.
func (d *Directory) EmployeeName(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.employeeIndex(id)
	if i < 0 {
		return "", false
	}
	return d.employees[i].Name, true
}

// CounterName resolves a counter id to a display name.
func (d *Directory) CounterName(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.counterIndex(id)
	if i < 0 {
		return "", false
	}
	return d.counters[i].Name, true
}

func (d *Directory) employeeIndex(id string) int {
	return slices.IndexFunc(d.employees, func(e Employee) bool { return e.ID == id })
}

func (d *Directory) counterIndex(id string) int {
	return slices.IndexFunc(d.counters, func(c Counter) bool { return c.ID == id })
}
