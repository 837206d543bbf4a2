/*
Package schedule implements the timesheet domain on top of the hours engine.

PURPOSE:
  Bridges persisted schedule rows and the pure classification core.
  Rows are grouped per calendar day into hours.DayRecord values, company
  holiday calendars feed the holiday flag, and monthly/yearly summaries
  are assembled for the reporting surfaces (API JSON, exports).

KEY CONCEPTS IN THIS FILE (types.go):
  - Company: A tenant
  - Worker: An employee belonging to one company
  - Row: A single stored clock-in/clock-out record with day flags
  - Holiday: A company (or global) holiday entry
  - ExternalCount: External-worker headcount per company and month

SEE ALSO:
  - group.go: Row-to-DayRecord grouping
  - report.go: Summary assembly and display formatting
  - store.go: Persistence interface
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
)

// =============================================================================
// TENANT ENTITIES
// =============================================================================

// Company is a tenant. Every worker, holiday, and external count hangs
// off a company.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Worker is an employee record.
type Worker struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	HireDate  time.Time
	CreatedAt time.Time
}

// =============================================================================
// SCHEDULE ROW - One stored clock record
// =============================================================================

// Row is a persisted schedule entry. Zero or more rows back one logical
// day: flags are OR-ed across rows, numeric amounts summed. Start/End
// stay raw strings so malformed historical data survives a round trip;
// the core treats unparsable values as zero duration.
type Row struct {
	ID       string
	WorkerID string
	Date     hours.Date
	Start    string
	End      string

	IsHoliday      bool
	IsVacation     bool
	IsMedicalLeave bool

	NegativeHours decimal.Decimal
	IsNegativeDay bool

	PaidHours    decimal.Decimal
	PaidHourType string

	CreatedAt time.Time
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a company holiday. An empty CompanyID marks a global
// holiday applying to all tenants.
type Holiday struct {
	ID        string
	CompanyID string
	Date      hours.Date
	Name      string
	Recurring bool // same month/day every year
}

// HolidayCalendar answers whether a date is a holiday for a company.
type HolidayCalendar interface {
	IsHoliday(companyID string, date hours.Date) bool
}

// NoHolidays is the calendar used when holiday lookups are disabled.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(string, hours.Date) bool { return false }

// Calendar is a HolidayCalendar over a fixed holiday list.
type Calendar struct {
	holidays []Holiday
}

func NewCalendar(holidays []Holiday) *Calendar {
	return &Calendar{holidays: holidays}
}

// IsHoliday checks company-specific entries and global entries.
// Recurring holidays match on month and day in any year.
func (c *Calendar) IsHoliday(companyID string, date hours.Date) bool {
	for _, h := range c.holidays {
		if h.CompanyID != "" && h.CompanyID != companyID {
			continue
		}
		if h.Recurring {
			if h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
				return true
			}
			continue
		}
		if h.Date.Equal(date) {
			return true
		}
	}
	return false
}

// =============================================================================
// EXTERNAL WORKERS
// =============================================================================

// ExternalCount records external headcount for a company and month.
// Plain CRUD; it does not feed the hour classification.
type ExternalCount struct {
	ID        string
	CompanyID string
	Year      int
	Month     time.Month
	Count     int
}
