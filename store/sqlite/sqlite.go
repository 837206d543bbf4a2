/*
Package sqlite provides a SQLite-backed implementation of schedule.Store.

PURPOSE:
  Persists companies, workers, schedule rows, company holidays, and
  external-worker counts. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  companies:              Tenants
  workers:                Employees per company
  schedule_rows:          Raw clock-in/clock-out records with day flags
  holidays:               Company-specific and global holidays
  external_worker_counts: External headcount per company and month

DECIMAL STORAGE:
  Hour amounts are stored as TEXT and parsed with shopspring/decimal.
  Unparsable stored amounts load as zero, matching the engine's lenient
  treatment of malformed historical data.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - schedule/store.go: Interface definition
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
	"github.com/warp/hours-engine/schedule"
)

// Store implements schedule.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ schedule.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workers_company
		ON workers(company_id);

	CREATE TABLE IF NOT EXISTS schedule_rows (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		is_holiday BOOLEAN DEFAULT FALSE,
		is_vacation BOOLEAN DEFAULT FALSE,
		is_medical_leave BOOLEAN DEFAULT FALSE,
		negative_hours TEXT NOT NULL DEFAULT '0',
		is_negative_day BOOLEAN DEFAULT FALSE,
		paid_hours TEXT NOT NULL DEFAULT '0',
		paid_hour_type TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: month/year range scans per worker
	CREATE INDEX IF NOT EXISTS idx_schedule_rows_worker_date
		ON schedule_rows(worker_id, date);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_company_date
		ON holidays(company_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(company_id, date, name);

	CREATE TABLE IF NOT EXISTS external_worker_counts (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		UNIQUE(company_id, year, month)
	);

	CREATE INDEX IF NOT EXISTS idx_external_counts_company
		ON external_worker_counts(company_id, year);
	`

	_, err := s.db.Exec(schema)
	return err
}

// parseStoredDecimal loads a TEXT amount leniently: unparsable stored
// values become zero instead of failing the row.
func parseStoredDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// COMPANIES
// =============================================================================

func (s *Store) SaveCompany(ctx context.Context, c schedule.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, c.ID, c.Name, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (s *Store) GetCompany(ctx context.Context, id string) (*schedule.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c schedule.Company
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM companies WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]schedule.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM companies ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var out []schedule.Company
	for rows.Next() {
		var c schedule.Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *Store) SaveWorker(ctx context.Context, w schedule.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workers (id, company_id, name, email, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			name = excluded.name,
			email = excluded.email,
			hire_date = excluded.hire_date
	`, w.ID, w.CompanyID, w.Name, w.Email,
		w.HireDate.Format("2006-01-02"), w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

func (s *Store) GetWorker(ctx context.Context, id string) (*schedule.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var w schedule.Worker
	var hireDate, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, company_id, name, email, hire_date, created_at FROM workers WHERE id = ?", id,
	).Scan(&w.ID, &w.CompanyID, &w.Name, &w.Email, &hireDate, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	w.HireDate, _ = time.Parse("2006-01-02", hireDate)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &w, nil
}

func (s *Store) ListWorkers(ctx context.Context, companyID string) ([]schedule.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, company_id, name, email, hire_date, created_at FROM workers"
	args := []any{}
	if companyID != "" {
		query += " WHERE company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var out []schedule.Worker
	for rows.Next() {
		var w schedule.Worker
		var hireDate, createdAt string
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Email, &hireDate, &createdAt); err != nil {
			return nil, err
		}
		w.HireDate, _ = time.Parse("2006-01-02", hireDate)
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, w)
	}
	return out, rows.Err()
}

// =============================================================================
// SCHEDULE ROWS
// =============================================================================

const rowSelect = `
	SELECT id, worker_id, date, start_time, end_time, is_holiday, is_vacation,
	       is_medical_leave, negative_hours, is_negative_day, paid_hours,
	       COALESCE(paid_hour_type, ''), created_at
	FROM schedule_rows`

func (s *Store) SaveRow(ctx context.Context, row schedule.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_rows
		(id, worker_id, date, start_time, end_time, is_holiday, is_vacation,
		 is_medical_leave, negative_hours, is_negative_day, paid_hours, paid_hour_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_holiday = excluded.is_holiday,
			is_vacation = excluded.is_vacation,
			is_medical_leave = excluded.is_medical_leave,
			negative_hours = excluded.negative_hours,
			is_negative_day = excluded.is_negative_day,
			paid_hours = excluded.paid_hours,
			paid_hour_type = excluded.paid_hour_type
	`, row.ID, row.WorkerID, row.Date.String(), row.Start, row.End,
		row.IsHoliday, row.IsVacation, row.IsMedicalLeave,
		row.NegativeHours.String(), row.IsNegativeDay,
		row.PaidHours.String(), row.PaidHourType,
		row.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save schedule row: %w", err)
	}
	return nil
}

func (s *Store) GetRow(ctx context.Context, id string) (*schedule.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryRows(ctx, rowSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) RowsInRange(ctx context.Context, workerID string, from, to hours.Date) ([]schedule.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRows(ctx,
		rowSelect+` WHERE worker_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC`,
		workerID, from.String(), to.String())
}

func (s *Store) DeleteRow(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM schedule_rows WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule row: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return schedule.ErrRowNotFound
	}
	return nil
}

func (s *Store) queryRows(ctx context.Context, query string, args ...any) ([]schedule.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule rows: %w", err)
	}
	defer rows.Close()

	var out []schedule.Row
	for rows.Next() {
		var r schedule.Row
		var date, negative, paid, createdAt string
		var start, end sql.NullString
		if err := rows.Scan(&r.ID, &r.WorkerID, &date, &start, &end,
			&r.IsHoliday, &r.IsVacation, &r.IsMedicalLeave,
			&negative, &r.IsNegativeDay, &paid, &r.PaidHourType, &createdAt); err != nil {
			return nil, err
		}
		// A row with an unparsable date still loads; grouping drops it.
		if d, ok := hours.ParseDate(date); ok {
			r.Date = d
		}
		r.Start = start.String
		r.End = end.String
		r.NegativeHours = parseStoredDecimal(negative)
		r.PaidHours = parseStoredDecimal(paid)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h schedule.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, company_id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, h.ID, h.CompanyID, h.Date.String(), h.Name, h.Recurring,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return schedule.ErrDuplicateID
		}
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context, companyID string, year int) ([]schedule.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Company-specific plus global entries; recurring entries match
	// any year so they are always included.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, date, name, recurring FROM holidays
		WHERE (company_id = ? OR company_id = '')
		  AND (recurring OR ? = 0 OR date LIKE ?)
		ORDER BY date ASC
	`, companyID, year, fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var out []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		var date string
		if err := rows.Scan(&h.ID, &h.CompanyID, &date, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		if d, ok := hours.ParseDate(date); ok {
			h.Date = d
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return schedule.ErrHolidayNotFound
	}
	return nil
}

// =============================================================================
// EXTERNAL-WORKER COUNTS
// =============================================================================

func (s *Store) PutExternalCount(ctx context.Context, c schedule.ExternalCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO external_worker_counts (id, company_id, year, month, count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(company_id, year, month) DO UPDATE SET count = excluded.count
	`, c.ID, c.CompanyID, c.Year, int(c.Month), c.Count)
	if err != nil {
		return fmt.Errorf("failed to put external count: %w", err)
	}
	return nil
}

func (s *Store) ListExternalCounts(ctx context.Context, companyID string, year int) ([]schedule.ExternalCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, company_id, year, month, count FROM external_worker_counts WHERE company_id = ?"
	args := []any{companyID}
	if year != 0 {
		query += " AND year = ?"
		args = append(args, year)
	}
	query += " ORDER BY year ASC, month ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list external counts: %w", err)
	}
	defer rows.Close()

	var out []schedule.ExternalCount
	for rows.Next() {
		var c schedule.ExternalCount
		var month int
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Year, &month, &c.Count); err != nil {
			return nil, err
		}
		c.Month = time.Month(month)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
