/*
classify.go - Per-day bucket classification

PURPOSE:
  Splits one day's worked intervals into the four regulated buckets.
  This is the single source of truth for the classification rules; the
  API layer and any export surface consume this instead of carrying
  their own copies.

RULE ORDER (first match wins for the whole day):
  1. Vacation:  entire duration posts to overtime. Vacation hours are
     accounted as a distinct "extra" ledger rather than normal hours;
     preserve exactly.
  2. Weekend / flagged holiday / medical leave: entire duration posts
     to holiday.
  3. Regular day: the night window ([00:00,06:00) and [22:00,24:00)) is
     carved out per interval; remaining daytime splits 8h normal, rest
     overtime.

SEE ALSO:
  - clock.go: Interval minute arithmetic
  - aggregate.go: Runs classification per day inside a period pass
*/
package hours

import (
	"github.com/shopspring/decimal"
)

// normalDailyMinutes is the regulated normal-hours cap per day.
const normalDailyMinutes = 8 * minutesPerHour

// Classify produces the four-bucket breakdown for a single day.
// Intervals with an empty or unparsable component contribute nothing;
// the function never fails.
func Classify(intervals []TimeInterval, date Date, flags DayFlags) HourBreakdown {
	worked := make([]TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Start != "" && iv.End != "" {
			worked = append(worked, iv)
		}
	}
	if len(worked) == 0 {
		return HourBreakdown{}
	}

	if flags.Vacation {
		return HourBreakdown{Overtime: IntervalsTotal(worked)}
	}

	if date.IsWeekend() || flags.Holiday || flags.MedicalLeave {
		return HourBreakdown{Holiday: IntervalsTotal(worked)}
	}

	// Regular day: carve night minutes out of each interval
	// independently, then split the remaining daytime at the 8h cap.
	var nightMinutes, daytimeMinutes int
	for _, iv := range worked {
		s, e, ok := intervalMinutes(iv.Start, iv.End)
		if !ok {
			continue
		}
		night := nightPortion(s, e)
		nightMinutes += night
		daytimeMinutes += (e - s) - night
	}

	breakdown := HourBreakdown{Night: minutesToHours(nightMinutes)}
	if daytimeMinutes > normalDailyMinutes {
		breakdown.Normal = minutesToHours(normalDailyMinutes)
		breakdown.Overtime = minutesToHours(daytimeMinutes - normalDailyMinutes)
	} else {
		breakdown.Normal = minutesToHours(daytimeMinutes)
	}
	return breakdown
}

// nightPortion returns how many minutes of [s, e) fall in the night
// window: the portion before 06:00 plus the portion after 22:00.
// e may exceed a day's minutes for midnight-crossing intervals; the
// after-22:00 tail then covers the spill into the next morning.
func nightPortion(s, e int) int {
	night := 0
	if s < nightMorningEnd {
		upper := e
		if upper > nightMorningEnd {
			upper = nightMorningEnd
		}
		night += upper - s
	}
	if e > nightEveningStart {
		lower := s
		if lower < nightEveningStart {
			lower = nightEveningStart
		}
		night += e - lower
	}
	if night < 0 {
		night = 0
	}
	if night > e-s {
		night = e - s
	}
	return night
}

func minutesToHours(m int) decimal.Decimal {
	if m < 0 {
		m = 0
	}
	return decimal.NewFromInt(int64(m)).Div(sixty)
}
