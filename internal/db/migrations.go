package db

import "fmt"

// migrate creates the session schema.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS shifts (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			employee_id TEXT NOT NULL,
			counter_id  TEXT NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			start_at    INTEGER NOT NULL,
			end_at      INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_shifts_counter_time ON shifts(counter_id, start_at, end_at);
		CREATE INDEX IF NOT EXISTS idx_shifts_time ON shifts(start_at, end_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating shifts table: %w", err)
	}

	return nil
}
