/*
settle.go - Negative-hour debt settlement and paid-hour allocation

PURPOSE:
  Two post-classification adjustments that run, in this order, on a
  day's breakdown:

  1. Settle: a recorded negative-hours debt is paid down from the day's
     overtime bucket only. Whatever the day cannot cover is reported as
     DebtRemaining (the aggregator then draws it from the period carry).

  2. Allocate: a requested paid-hours amount is deducted from the
     buckets. A recognized target bucket is drawn alone with no
     spillover; otherwise the fixed priority order
     normal -> overtime -> night -> holiday applies.

  Allocate must run strictly after Settle for the same day: paid-hour
  allocation operates on the post-debt breakdown.

SEE ALSO:
  - aggregate.go: Chains settle and allocate inside a period pass
*/
package hours

import (
	"github.com/shopspring/decimal"
)

// allocationOrder is the fallback depletion order when no target bucket
// is given.
var allocationOrder = [...]Bucket{BucketNormal, BucketOvertime, BucketNight, BucketHoliday}

// Settle applies a day's negative-hours debt against the overtime
// bucket. Normal, night, and holiday hours are never drawn down.
func Settle(breakdown HourBreakdown, negativeHours decimal.Decimal) SettlementResult {
	negativeHours = clampPositive(negativeHours)
	if negativeHours.IsZero() {
		return SettlementResult{Breakdown: breakdown}
	}

	applied := decimal.Min(breakdown.Overtime, negativeHours)
	return SettlementResult{
		Breakdown:     breakdown.with(BucketOvertime, breakdown.Overtime.Sub(applied)),
		DebtRemaining: clampPositive(negativeHours.Sub(applied)),
	}
}

// Allocate deducts requested paid hours from the breakdown. When target
// names one of the four buckets, only that bucket is drawn; a shortfall
// is NOT spilled into other buckets, and HoursApplied reflects only
// what the bucket actually held. An empty or unrecognized target falls
// back to the fixed priority order.
func Allocate(breakdown HourBreakdown, requestedHours decimal.Decimal, target Bucket) PaidAllocationResult {
	if !requestedHours.IsPositive() {
		return PaidAllocationResult{Breakdown: breakdown}
	}

	if bucket, ok := ParseBucket(string(target)); ok {
		applied := decimal.Min(breakdown.Get(bucket), requestedHours)
		return PaidAllocationResult{
			Breakdown:   breakdown.with(bucket, breakdown.Get(bucket).Sub(applied)),
			HoursApplied: applied,
		}
	}

	remaining := requestedHours
	applied := decimal.Zero
	for _, bucket := range allocationOrder {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(breakdown.Get(bucket), remaining)
		if !take.IsPositive() {
			continue
		}
		breakdown = breakdown.with(bucket, breakdown.Get(bucket).Sub(take))
		remaining = remaining.Sub(take)
		applied = applied.Add(take)
	}
	return PaidAllocationResult{Breakdown: breakdown, HoursApplied: applied}
}
