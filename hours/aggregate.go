/*
aggregate.go - Period aggregation with carried-forward overtime

PURPOSE:
  Folds per-day breakdowns over a month or year. The one piece of state
  is overtimeCarry, scoped to a single call: a later day's debt can draw
  down overtime accumulated on earlier days in the same pass, so days
  MUST be processed in ascending date order.

PIPELINE PER DAY (order is financially significant, do not reorder):
  1. Classify the day's intervals.
  2. Settle the day's debt: first against the day's own overtime, then
     against the running carry; leftover debt accumulates in Debt.
  3. Allocate requested paid hours on the post-debt breakdown.
  4. Fold normal/night/holiday into the totals and the day's remaining
     overtime into the carry.

  The period's reported Overtime IS the final carry, not a per-day sum.

SEE ALSO:
  - classify.go, settle.go: The per-day stages
*/
package hours

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DayResult is one day's outcome inside an aggregation pass, surfaced
// so reporting layers can render per-day lines without re-running the
// pipeline themselves.
type DayResult struct {
	Date          Date
	Breakdown     HourBreakdown
	DebtRemaining decimal.Decimal
	PaidApplied   decimal.Decimal
	NegativeDay   bool
}

// Aggregate computes the period totals for the days falling inside the
// period. Days outside the range are ignored.
func Aggregate(days []DayRecord, period Period) PeriodTotals {
	_, totals := AggregateDays(days, period)
	return totals
}

// AggregateDays runs the full pass and returns both the per-day results
// (in ascending date order) and the period totals.
func AggregateDays(days []DayRecord, period Period) ([]DayResult, PeriodTotals) {
	inRange := make([]DayRecord, 0, len(days))
	for _, day := range days {
		if period.Contains(day.Date) {
			inRange = append(inRange, day)
		}
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].Date.Before(inRange[j].Date)
	})

	var totals PeriodTotals
	results := make([]DayResult, 0, len(inRange))
	overtimeCarry := decimal.Zero

	for _, day := range inRange {
		breakdown := Classify(day.Intervals, day.Date, day.Flags())

		settled := Settle(breakdown, day.NegativeHours)
		debt := settled.DebtRemaining
		if debt.IsPositive() {
			// Draw the shortfall from overtime carried in from prior days.
			fromCarry := decimal.Min(overtimeCarry, debt)
			overtimeCarry = overtimeCarry.Sub(fromCarry)
			debt = debt.Sub(fromCarry)
		}

		allocated := Allocate(settled.Breakdown, day.RequestedPaidHours, day.PaidHourType)
		breakdown = allocated.Breakdown

		totals.Normal = totals.Normal.Add(breakdown.Normal)
		totals.Night = totals.Night.Add(breakdown.Night)
		totals.Holiday = totals.Holiday.Add(breakdown.Holiday)
		totals.Debt = totals.Debt.Add(debt)
		totals.Paid = totals.Paid.Add(allocated.HoursApplied)

		overtimeCarry = clampPositive(overtimeCarry.Add(breakdown.Overtime))

		results = append(results, DayResult{
			Date:          day.Date,
			Breakdown:     breakdown,
			DebtRemaining: debt,
			PaidApplied:   allocated.HoursApplied,
			NegativeDay:   day.IsNegativeDay,
		})
	}

	totals.Overtime = overtimeCarry
	return results, totals
}
