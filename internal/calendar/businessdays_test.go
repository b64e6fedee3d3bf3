package calendar_test

import (
	"testing"
	"time"

	"leavehub/internal/calendar"
	"leavehub/internal/holiday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func holidayOn(t time.Time, recurring bool) holiday.Holiday {
	return holiday.Holiday{
		ID:        uuid.New(),
		Date:      t,
		Type:      holiday.TypePublic,
		Recurring: recurring,
	}
}

func TestCountBusinessDays(t *testing.T) {
	t.Run("full work week", func(t *testing.T) {
		// 2026-03-02 is a Monday
		got := calendar.CountBusinessDays(date(2026, 3, 2), date(2026, 3, 6), nil)
		assert.Equal(t, 5, got)
	})

	t.Run("single day inclusive of both endpoints", func(t *testing.T) {
		got := calendar.CountBusinessDays(date(2026, 3, 4), date(2026, 3, 4), nil)
		assert.Equal(t, 1, got)
	})

	t.Run("range fully inside a weekend returns zero", func(t *testing.T) {
		// 2026-03-07 Sat, 2026-03-08 Sun
		got := calendar.CountBusinessDays(date(2026, 3, 7), date(2026, 3, 8), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("seven day span with one weekday holiday returns four", func(t *testing.T) {
		holidays := []holiday.Holiday{holidayOn(date(2026, 3, 4), false)}
		// Mon 2026-03-02 through Sun 2026-03-08: 5 weekdays minus 1 holiday
		got := calendar.CountBusinessDays(date(2026, 3, 2), date(2026, 3, 8), holidays)
		assert.Equal(t, 4, got)
	})

	t.Run("recurring holiday matches month and day across years", func(t *testing.T) {
		// stored for 2020, requested range in 2026
		holidays := []holiday.Holiday{holidayOn(date(2020, 3, 4), true)}
		got := calendar.CountBusinessDays(date(2026, 3, 2), date(2026, 3, 6), holidays)
		assert.Equal(t, 4, got)
	})

	t.Run("non-recurring holiday does not match other years", func(t *testing.T) {
		holidays := []holiday.Holiday{holidayOn(date(2020, 3, 4), false)}
		got := calendar.CountBusinessDays(date(2026, 3, 2), date(2026, 3, 6), holidays)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend holiday does not double-exclude", func(t *testing.T) {
		holidays := []holiday.Holiday{holidayOn(date(2026, 3, 7), false)} // Saturday
		got := calendar.CountBusinessDays(date(2026, 3, 6), date(2026, 3, 9), holidays)
		assert.Equal(t, 2, got) // Fri + Mon
	})

	t.Run("timestamps are normalized to day boundaries", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
		end := time.Date(2026, 3, 6, 1, 0, 0, 0, time.UTC)
		got := calendar.CountBusinessDays(start, end, nil)
		assert.Equal(t, 5, got)
	})

	t.Run("same inputs same output", func(t *testing.T) {
		holidays := []holiday.Holiday{holidayOn(date(2026, 3, 4), true)}
		first := calendar.CountBusinessDays(date(2026, 3, 1), date(2026, 3, 31), holidays)
		second := calendar.CountBusinessDays(date(2026, 3, 1), date(2026, 3, 31), holidays)
		assert.Equal(t, first, second)
	})
}

func TestIsBusinessDay(t *testing.T) {
	t.Run("weekday", func(t *testing.T) {
		assert.True(t, calendar.IsBusinessDay(date(2026, 3, 3), nil))
	})

	t.Run("saturday", func(t *testing.T) {
		assert.False(t, calendar.IsBusinessDay(date(2026, 3, 7), nil))
	})

	t.Run("holiday", func(t *testing.T) {
		holidays := []holiday.Holiday{holidayOn(date(2026, 3, 3), false)}
		assert.False(t, calendar.IsBusinessDay(date(2026, 3, 3), holidays))
	})
}
