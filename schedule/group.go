/*
group.go - Grouping stored rows into per-day records

PURPOSE:
  One logical day may be backed by several stored rows (split shifts,
  a flag-only row, a correction row). GroupRows folds them into one
  hours.DayRecord per date:

  - intervals: every row with both clock fields present contributes one
  - flags: OR-ed across rows
  - negative/paid amounts: summed
  - paid-hour target: the last row that names one wins
  - holiday calendar: sets the holiday flag in addition to row flags

  A row with a zero date is dropped rather than failing the batch; one
  bad stored row must not block a month's report.
*/
package schedule

import (
	"sort"

	"github.com/warp/hours-engine/hours"
)

// GroupRows folds stored rows into day records, ordered by ascending
// date. The calendar may be nil when holiday lookups are not wanted.
func GroupRows(rows []Row, calendar HolidayCalendar, companyID string) []hours.DayRecord {
	byDate := make(map[string]*hours.DayRecord)

	for _, row := range rows {
		if row.Date.IsZero() {
			continue
		}

		key := row.Date.String()
		day, ok := byDate[key]
		if !ok {
			day = &hours.DayRecord{Date: row.Date}
			if calendar != nil && calendar.IsHoliday(companyID, row.Date) {
				day.IsHoliday = true
			}
			byDate[key] = day
		}

		if row.Start != "" || row.End != "" {
			day.Intervals = append(day.Intervals, hours.TimeInterval{
				Start: row.Start,
				End:   row.End,
			})
		}

		day.IsHoliday = day.IsHoliday || row.IsHoliday
		day.IsVacation = day.IsVacation || row.IsVacation
		day.IsMedicalLeave = day.IsMedicalLeave || row.IsMedicalLeave
		day.IsNegativeDay = day.IsNegativeDay || row.IsNegativeDay

		day.NegativeHours = day.NegativeHours.Add(row.NegativeHours)
		day.RequestedPaidHours = day.RequestedPaidHours.Add(row.PaidHours)
		if bucket, ok := hours.ParseBucket(row.PaidHourType); ok {
			day.PaidHourType = bucket
		}
	}

	days := make([]hours.DayRecord, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
