/*
clock.go - Wall-clock parsing and interval duration

PURPOSE:
  Converts "HH:MM" (or "HH:MM:SS") wall-clock strings into minutes since
  midnight and computes elapsed hours for a clock-in/clock-out pair,
  handling the equal-time and midnight-crossing cases.

LENIENT PARSING POLICY:
  Stored schedule rows come from years of manual entry and imports.
  A malformed clock string contributes zero duration instead of failing
  the whole calculation. This is deliberate; do not tighten.

SEE ALSO:
  - classify.go: Uses the same minute arithmetic for the night carve-out
*/
package hours

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	minutesPerDay  = 24 * 60
	minutesPerHour = 60

	// Night window boundaries, minutes from midnight. Night covers
	// [00:00, 06:00) and [22:00, 24:00) wall clock. Fixed by regulation,
	// not configurable.
	nightMorningEnd   = 6 * 60
	nightEveningStart = 22 * 60
)

var sixty = decimal.NewFromInt(minutesPerHour)

// minuteOfDay parses a wall-clock string to minutes since midnight.
// Accepts "HH:MM" and "HH:MM:SS" (seconds are ignored). Returns
// ok=false for anything that does not parse to hour in [0,23] and
// minute in [0,59].
func minuteOfDay(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*minutesPerHour + minute, true
}

// intervalMinutes returns the [start, end) pair in minutes since
// midnight with the midnight wraparound applied: end at or before start
// gets a day added. An equal pair is "no work" and returns ok=false,
// as does any unparsable component.
func intervalMinutes(start, end string) (s, e int, ok bool) {
	s, ok = minuteOfDay(start)
	if !ok {
		return 0, 0, false
	}
	e, ok = minuteOfDay(end)
	if !ok {
		return 0, 0, false
	}
	if s == e {
		return 0, 0, false
	}
	if e < s {
		e += minutesPerDay
	}
	return s, e, true
}

// Duration returns the elapsed hours between two wall-clock strings.
// Equal times mean no work (0, never 24). End before start crosses
// midnight. Malformed input contributes 0; Duration never fails.
func Duration(start, end string) decimal.Decimal {
	s, e, ok := intervalMinutes(start, end)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(e - s)).Div(sixty)
}

// IntervalsTotal sums Duration over a set of intervals, skipping any
// with an empty start or end.
func IntervalsTotal(intervals []TimeInterval) decimal.Decimal {
	total := decimal.Zero
	for _, iv := range intervals {
		if iv.Start == "" || iv.End == "" {
			continue
		}
		total = total.Add(Duration(iv.Start, iv.End))
	}
	return total
}
