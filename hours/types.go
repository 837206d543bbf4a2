/*
Package hours provides the daily work-hours classification engine.

PURPOSE:
  This package contains the pure computation core of the timesheet system:
  splitting a day's clock-in/clock-out intervals into regulated hour
  buckets (normal, overtime, night, holiday), settling negative-hour
  debts against overtime, deducting paid-hour allocations, and
  aggregating per-day breakdowns over a month or year with a
  carried-forward overtime balance.

KEY CONCEPTS IN THIS FILE (types.go):
  - Bucket: One of the four regulated hour categories
  - TimeInterval: A raw clock-in/clock-out pair ("HH:MM" wall clock)
  - DayRecord: One calendar day of worked time for one worker
  - HourBreakdown: The four-bucket classification output for one day
  - PeriodTotals: The aggregated totals over a date range

DESIGN PRINCIPLES:
  1. Purity: Every function is a pure function over immutable inputs;
     transformations return new breakdowns, nothing is mutated in place.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in
     payroll-relevant arithmetic.
  3. Leniency: Malformed stored data (bad clock strings, empty interval
     lists) degrades to zero duration. The core never returns errors and
     never panics; one bad row must not block a month's report.
  4. Determinism: No system-clock reads. Callers pass explicit dates.

USAGE:
  day := hours.DayRecord{
      Date:      hours.NewDate(2025, time.March, 10),
      Intervals: []hours.TimeInterval{{Start: "09:00", End: "18:30"}},
  }
  breakdown := hours.Classify(day.Intervals, day.Date, day.Flags())

SEE ALSO:
  - clock.go: Wall-clock parsing and interval duration
  - classify.go: The per-day bucket classification
  - settle.go: Debt settlement and paid-hour allocation
  - aggregate.go: Period aggregation with overtime carry
*/
package hours

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// BUCKET - Regulated hour category
// =============================================================================

type Bucket string

const (
	BucketNormal   Bucket = "normal"
	BucketOvertime Bucket = "overtime"
	BucketNight    Bucket = "night"
	BucketHoliday  Bucket = "holiday"
)

// ParseBucket returns the bucket named by s, or ("", false) when s does
// not name one of the four buckets. An unrecognized bucket name is not
// an error: paid-hour allocation falls back to priority order.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case BucketNormal, BucketOvertime, BucketNight, BucketHoliday:
		return Bucket(s), true
	}
	return "", false
}

// =============================================================================
// TIME INTERVAL - Raw clock-in/clock-out pair
// =============================================================================

// TimeInterval is a (start, end) wall-clock pair on a 24-hour scale,
// minute resolution ("HH:MM" or "HH:MM:SS"). End at or before start
// means the interval crosses midnight; start equal to end means no work.
type TimeInterval struct {
	Start string
	End   string
}

// =============================================================================
// DAY RECORD - One calendar day of worked time for one worker
// =============================================================================

// DayFlags carry the day-type markers that override bucket routing.
type DayFlags struct {
	Holiday      bool
	Vacation     bool
	MedicalLeave bool
}

// DayRecord is the core's input for a single day. One logical DayRecord
// may be backed by zero or more stored rows; a record with no intervals
// can still carry flags and debt/paid amounts.
type DayRecord struct {
	Date      Date
	Intervals []TimeInterval

	IsHoliday      bool
	IsVacation     bool
	IsMedicalLeave bool

	// NegativeHours is a recorded debt paid down from overtime.
	NegativeHours decimal.Decimal
	// IsNegativeDay marks the day negative without a numeric amount.
	// Reporting-only: it never participates in the debt arithmetic.
	IsNegativeDay bool

	// RequestedPaidHours marks hours as already compensated; deducted
	// from PaidHourType when set, else in fixed priority order.
	RequestedPaidHours decimal.Decimal
	PaidHourType       Bucket
}

// Flags bundles the day-type markers for classification.
func (d DayRecord) Flags() DayFlags {
	return DayFlags{
		Holiday:      d.IsHoliday,
		Vacation:     d.IsVacation,
		MedicalLeave: d.IsMedicalLeave,
	}
}

// =============================================================================
// HOUR BREAKDOWN - Classification output for one day
// =============================================================================

// HourBreakdown is the four-bucket split of one day's worked time, in
// decimal hours. Invariants: every field is >= 0 and Normal <= 8.
type HourBreakdown struct {
	Normal   decimal.Decimal
	Overtime decimal.Decimal
	Night    decimal.Decimal
	Holiday  decimal.Decimal
}

// Get returns the amount held in the named bucket.
func (b HourBreakdown) Get(bucket Bucket) decimal.Decimal {
	switch bucket {
	case BucketNormal:
		return b.Normal
	case BucketOvertime:
		return b.Overtime
	case BucketNight:
		return b.Night
	case BucketHoliday:
		return b.Holiday
	}
	return decimal.Zero
}

// with returns a copy of the breakdown with the named bucket replaced,
// clamped at zero.
func (b HourBreakdown) with(bucket Bucket, value decimal.Decimal) HourBreakdown {
	if value.IsNegative() {
		value = decimal.Zero
	}
	switch bucket {
	case BucketNormal:
		b.Normal = value
	case BucketOvertime:
		b.Overtime = value
	case BucketNight:
		b.Night = value
	case BucketHoliday:
		b.Holiday = value
	}
	return b
}

// Total returns the sum across all four buckets.
func (b HourBreakdown) Total() decimal.Decimal {
	return b.Normal.Add(b.Overtime).Add(b.Night).Add(b.Holiday)
}

// IsZero reports whether every bucket is zero.
func (b HourBreakdown) IsZero() bool {
	return b.Normal.IsZero() && b.Overtime.IsZero() && b.Night.IsZero() && b.Holiday.IsZero()
}

// =============================================================================
// SETTLEMENT AND ALLOCATION RESULTS
// =============================================================================

// SettlementResult is the outcome of applying a day's negative-hour debt.
type SettlementResult struct {
	Breakdown     HourBreakdown
	DebtRemaining decimal.Decimal
}

// PaidAllocationResult is the outcome of deducting requested paid hours.
type PaidAllocationResult struct {
	Breakdown   HourBreakdown
	HoursApplied decimal.Decimal
}

// =============================================================================
// PERIOD TOTALS - Aggregated over a date range
// =============================================================================

// PeriodTotals sums per-day breakdowns across a period. Overtime is NOT
// a simple per-day sum: it is the final carried-forward balance after
// later days' debts have drawn down overtime accumulated on earlier
// days (see Aggregate).
type PeriodTotals struct {
	Normal   decimal.Decimal
	Overtime decimal.Decimal
	Night    decimal.Decimal
	Holiday  decimal.Decimal
	Debt     decimal.Decimal
	Paid     decimal.Decimal
}

// clampPositive floors a quantity at zero. Second line of defense
// against numeric drift; callers are expected to pass sane input.
func clampPositive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
