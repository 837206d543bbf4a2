/*
store.go - Persistence interface for the timesheet domain

PURPOSE:
  Defines the interface between the domain/API layers and the database.
  Implementations:
  - store/sqlite: production SQLite store
  - schedule/store: in-memory store for tests and dev

  The computation core never touches this interface; callers load rows,
  group them, and hand plain values to the hours package.
*/
package schedule

import (
	"context"

	"github.com/warp/hours-engine/hours"
)

// Store is the full persistence surface the API layer needs.
type Store interface {
	// Companies
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, id string) (*Company, error)
	SaveCompany(ctx context.Context, c Company) error

	// Workers
	ListWorkers(ctx context.Context, companyID string) ([]Worker, error)
	GetWorker(ctx context.Context, id string) (*Worker, error)
	SaveWorker(ctx context.Context, w Worker) error

	// Schedule rows
	RowsInRange(ctx context.Context, workerID string, from, to hours.Date) ([]Row, error)
	GetRow(ctx context.Context, id string) (*Row, error)
	SaveRow(ctx context.Context, row Row) error
	DeleteRow(ctx context.Context, id string) error

	// Holidays
	ListHolidays(ctx context.Context, companyID string, year int) ([]Holiday, error)
	SaveHoliday(ctx context.Context, h Holiday) error
	DeleteHoliday(ctx context.Context, id string) error

	// External-worker counts
	ListExternalCounts(ctx context.Context, companyID string, year int) ([]ExternalCount, error)
	PutExternalCount(ctx context.Context, c ExternalCount) error
}
