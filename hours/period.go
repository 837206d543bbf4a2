package hours

import "time"

// =============================================================================
// PERIOD - Inclusive date range for aggregation
// =============================================================================

// Period is the [Start, End] range one aggregation pass covers.
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date falls within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// MonthRange returns the period covering one calendar month.
func MonthRange(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// YearRange returns the period covering one calendar year.
func YearRange(year int) Period {
	return Period{
		Start: NewDate(year, time.January, 1),
		End:   NewDate(year, time.December, 31),
	}
}
