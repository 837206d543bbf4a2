// Package store provides an in-memory schedule.Store for tests and dev.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/hours-engine/hours"
	"github.com/warp/hours-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	companies map[string]schedule.Company
	workers   map[string]schedule.Worker
	rows      map[string]schedule.Row
	holidays  map[string]schedule.Holiday
	externals map[externalKey]schedule.ExternalCount
}

type externalKey struct {
	CompanyID string
	Year      int
	Month     int
}

func NewMemory() *Memory {
	return &Memory{
		companies: make(map[string]schedule.Company),
		workers:   make(map[string]schedule.Worker),
		rows:      make(map[string]schedule.Row),
		holidays:  make(map[string]schedule.Holiday),
		externals: make(map[externalKey]schedule.ExternalCount),
	}
}

var _ schedule.Store = (*Memory)(nil)

// =============================================================================
// COMPANIES
// =============================================================================

func (m *Memory) ListCompanies(_ context.Context) ([]schedule.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schedule.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetCompany(_ context.Context, id string) (*schedule.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) SaveCompany(_ context.Context, c schedule.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.ID] = c
	return nil
}

// =============================================================================
// WORKERS
// =============================================================================

func (m *Memory) ListWorkers(_ context.Context, companyID string) ([]schedule.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.Worker
	for _, w := range m.workers {
		if companyID == "" || w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetWorker(_ context.Context, id string) (*schedule.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *Memory) SaveWorker(_ context.Context, w schedule.Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[w.ID] = w
	return nil
}

// =============================================================================
// SCHEDULE ROWS
// =============================================================================

func (m *Memory) RowsInRange(_ context.Context, workerID string, from, to hours.Date) ([]schedule.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.Row
	for _, row := range m.rows {
		if row.WorkerID != workerID {
			continue
		}
		if row.Date.AfterOrEqual(from) && row.Date.BeforeOrEqual(to) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetRow(_ context.Context, id string) (*schedule.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *Memory) SaveRow(_ context.Context, row schedule.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[row.ID] = row
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return schedule.ErrRowNotFound
	}
	delete(m.rows, id)
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Memory) ListHolidays(_ context.Context, companyID string, year int) ([]schedule.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.Holiday
	for _, h := range m.holidays {
		if h.CompanyID != "" && h.CompanyID != companyID {
			continue
		}
		if year != 0 && !h.Recurring && h.Date.Year() != year {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveHoliday(_ context.Context, h schedule.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.holidays[id]; !ok {
		return schedule.ErrHolidayNotFound
	}
	delete(m.holidays, id)
	return nil
}

// =============================================================================
// EXTERNAL-WORKER COUNTS
// =============================================================================

func (m *Memory) ListExternalCounts(_ context.Context, companyID string, year int) ([]schedule.ExternalCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.ExternalCount
	for _, c := range m.externals {
		if c.CompanyID == companyID && (year == 0 || c.Year == year) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (m *Memory) PutExternalCount(_ context.Context, c schedule.ExternalCount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.externals[externalKey{c.CompanyID, c.Year, int(c.Month)}] = c
	return nil
}
