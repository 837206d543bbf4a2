/*
report.go - Summary assembly and display formatting

PURPOSE:
  The one place summaries are built. The API layer, calendar views, and
  any export surface all consume this instead of re-running (and
  drifting from) the classification pipeline themselves.
*/
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
)

// =============================================================================
// SUMMARIES
// =============================================================================

// Summary is the reporting unit for one worker over one period: the
// per-day pipeline results plus the period totals.
type Summary struct {
	WorkerID string
	Period   hours.Period
	Days     []hours.DayResult
	Totals   hours.PeriodTotals
}

// BuildSummary groups rows and runs one aggregation pass over the
// period. Days are processed in ascending date order inside the pass,
// so later debts can draw on earlier overtime.
func BuildSummary(workerID string, rows []Row, calendar HolidayCalendar, companyID string, period hours.Period) Summary {
	days := GroupRows(rows, calendar, companyID)
	results, totals := hours.AggregateDays(days, period)
	return Summary{
		WorkerID: workerID,
		Period:   period,
		Days:     results,
		Totals:   totals,
	}
}

// MonthlySummary builds the summary for one calendar month.
func MonthlySummary(workerID string, rows []Row, calendar HolidayCalendar, companyID string, year int, month time.Month) Summary {
	return BuildSummary(workerID, rows, calendar, companyID, hours.MonthRange(year, month))
}

// YearlySummary builds the summary for a whole year as a single pass,
// so the overtime carry spans month boundaries.
func YearlySummary(workerID string, rows []Row, calendar HolidayCalendar, companyID string, year int) Summary {
	return BuildSummary(workerID, rows, calendar, companyID, hours.YearRange(year))
}

// DayBreakdown classifies a single day's rows without period context
// (no carry, no settlement). Used by calendar cell views.
func DayBreakdown(rows []Row, calendar HolidayCalendar, companyID string, date hours.Date) hours.HourBreakdown {
	for _, day := range GroupRows(rows, calendar, companyID) {
		if day.Date.Equal(date) {
			return hours.Classify(day.Intervals, day.Date, day.Flags())
		}
	}
	return hours.HourBreakdown{}
}

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// FormatHours renders a decimal hours value as "HH:MM", rounding to the
// nearest minute. Negative values render with a leading minus.
func FormatHours(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	totalMinutes := d.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	return fmt.Sprintf("%s%02d:%02d", sign, totalMinutes/60, totalMinutes%60)
}
