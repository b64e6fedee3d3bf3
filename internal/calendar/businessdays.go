package calendar

import (
	"time"

	"leavehub/internal/holiday"
)

// CountBusinessDays returns the number of billable days in [start, end],
// inclusive of both endpoints. A day counts unless it falls on a weekend or
// matches a holiday: exact date for one-off holidays, (month, day) for
// recurring ones. Callers must guarantee start <= end; a zero result is valid
// and means the range has no billable days.
func CountBusinessDays(start, end time.Time, holidays []holiday.Holiday) int {
	start = truncateToDay(start)
	end = truncateToDay(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}
		if isHoliday(d, holidays) {
			continue
		}
		count++
	}
	return count
}

// IsBusinessDay reports whether a single day is billable.
func IsBusinessDay(day time.Time, holidays []holiday.Holiday) bool {
	day = truncateToDay(day)
	return !isWeekend(day) && !isHoliday(day, holidays)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isHoliday(d time.Time, holidays []holiday.Holiday) bool {
	for _, h := range holidays {
		hd := truncateToDay(h.Date)
		if h.Recurring {
			if hd.Month() == d.Month() && hd.Day() == d.Day() {
				return true
			}
			continue
		}
		if hd.Equal(d) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
