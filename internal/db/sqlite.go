// Package db provides the SQLite shift repository for a planning session.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/roster/internal/shift"
)

const shiftsTable = "shifts"

var shiftColumns = []string{
	"id", "employee_id", "counter_id", "title", "location",
	"color", "description", "start_at", "end_at",
}

// SQLite implements shift.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	loc *time.Location
}

// Option configures the repository.
type Option func(*SQLite)

// WithLocation sets the location times are returned in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *SQLite) { s.loc = loc }
}

// NewMemory opens a private in-memory database that lives until Close.
func NewMemory(opts ...Option) (*SQLite, error) {
	return New(MemoryDSN(), opts...)
}

// MemoryDSN returns a DSN for a new, uniquely named in-memory database.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

// New opens the database at dsn and runs migrations.
func New(dsn string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// An in-memory database disappears when its last connection closes.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// shiftRow is the table layout of a shift.
type shiftRow struct {
	Seq         int64  `db:"seq"`
	ID          string `db:"id"`
	EmployeeID  string `db:"employee_id"`
	CounterID   string `db:"counter_id"`
	Title       string `db:"title"`
	Location    string `db:"location"`
	Color       string `db:"color"`
	Description string `db:"description"`
	StartAt     int64  `db:"start_at"`
	EndAt       int64  `db:"end_at"`
}

func (r shiftRow) toShift(loc *time.Location) shift.Shift {
	return shift.Shift{
		Event: shift.Event{
			ID:          r.ID,
			Title:       r.Title,
			Start:       time.Unix(0, r.StartAt).In(loc),
			End:         time.Unix(0, r.EndAt).In(loc),
			Color:       r.Color,
			Description: r.Description,
			Location:    r.Location,
		},
		EmployeeID: r.EmployeeID,
		CounterID:  r.CounterID,
	}
}

// Create adds a new shift to the repository.
// Returns shift.ErrDuplicateShift if the id already exists.
func (s *SQLite) Create(ctx context.Context, sh shift.Shift) error {
	query, args, err := s.sb.Insert(shiftsTable).
		Columns(shiftColumns...).
		Values(
			sh.ID, sh.EmployeeID, sh.CounterID, sh.Title, sh.Location,
			sh.Color, sh.Description, sh.Start.UnixNano(), sh.End.UnixNano(),
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting shift: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", shift.ErrDuplicateShift, sh.ID)
	}
	return nil
}

// Update replaces a shift in place. The row keeps its insertion position.
func (s *SQLite) Update(ctx context.Context, sh shift.Shift) error {
	query, args, err := s.sb.Update(shiftsTable).
		Set("employee_id", sh.EmployeeID).
		Set("counter_id", sh.CounterID).
		Set("title", sh.Title).
		Set("location", sh.Location).
		Set("color", sh.Color).
		Set("description", sh.Description).
		Set("start_at", sh.Start.UnixNano()).
		Set("end_at", sh.End.UnixNano()).
		Where(sq.Eq{"id": sh.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}
	return s.execOne(ctx, sh.ID, query, args...)
}

// Delete removes a shift by id.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	query, args, err := s.sb.Delete(shiftsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	return s.execOne(ctx, id, query, args...)
}

// Get retrieves a shift by id.
func (s *SQLite) Get(ctx context.Context, id string) (shift.Shift, error) {
	query, args, err := s.selectShifts().
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return shift.Shift{}, fmt.Errorf("building select: %w", err)
	}

	var row shiftRow
	if err := sqlscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return shift.Shift{}, fmt.Errorf("%w: %q", shift.ErrShiftNotFound, id)
		}
		return shift.Shift{}, fmt.Errorf("querying shift: %w", err)
	}
	return row.toShift(s.loc), nil
}

// List returns every shift in insertion order.
func (s *SQLite) List(ctx context.Context) ([]shift.Shift, error) {
	return s.list(ctx, s.selectShifts())
}

// ListBetween returns shifts intersecting [start, end) in insertion order.
func (s *SQLite) ListBetween(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	return s.list(ctx, s.selectShifts().Where(overlapping(start, end)))
}

// ListOverlapping returns the shifts on counterID intersecting [start, end).
func (s *SQLite) ListOverlapping(ctx context.Context, counterID string, start, end time.Time) ([]shift.Shift, error) {
	return s.list(ctx, s.selectShifts().
		Where(sq.Eq{"counter_id": counterID}).
		Where(overlapping(start, end)))
}

// Count returns the number of stored shifts.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From(shiftsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting shifts: %w", err)
	}
	return n, nil
}

// Close releases database resources. An in-memory database is discarded.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) selectShifts() sq.SelectBuilder {
	return s.sb.Select(append([]string{"seq"}, shiftColumns...)...).
		From(shiftsTable).
		OrderBy("seq ASC")
}

// overlapping is the half-open intersection with [start, end). Rows without
// a positive duration never match.
func overlapping(start, end time.Time) sq.And {
	return sq.And{
		sq.Lt{"start_at": end.UnixNano()},
		sq.Gt{"end_at": start.UnixNano()},
		sq.Expr("start_at < end_at"),
	}
}

func (s *SQLite) list(ctx context.Context, b sq.SelectBuilder) ([]shift.Shift, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	var rows []shiftRow
	if err := sqlscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying shifts: %w", err)
	}

	shifts := make([]shift.Shift, 0, len(rows))
	for _, r := range rows {
		shifts = append(shifts, r.toShift(s.loc))
	}
	return shifts, nil
}

func (s *SQLite) execOne(ctx context.Context, id, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("writing shift %q: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", shift.ErrShiftNotFound, id)
	}
	return nil
}

var _ shift.Repository = (*SQLite)(nil)
