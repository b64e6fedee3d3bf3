package leave

import (
	"testing"
	"time"

	"leavehub/internal/balance"
	"leavehub/internal/holiday"
	"leavehub/internal/policy"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckEligibility_FullWeekApproved(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2), // Monday
		EndDate:   date(2026, 3, 6), // Friday
		Policy:    &policy.LeavePolicy{MaxDays: 20, MinNotice: 3},
		Balance:   &balance.LeaveBalance{TotalDays: 20, UsedDays: 0},
		Now:       date(2026, 2, 2),
	})

	assert.True(t, result.OK())
	assert.Equal(t, 5, result.Days)
	assert.Empty(t, result.Reasons)
}

func TestCheckEligibility_HolidaysReduceDays(t *testing.T) {
	holidays := []holiday.Holiday{
		{Date: date(2026, 3, 4), Recurring: false},
	}

	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 6),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Holidays:  holidays,
		Now:       date(2026, 2, 2),
	})

	assert.True(t, result.OK())
	assert.Equal(t, 4, result.Days)
}

func TestCheckEligibility_WeekendOnlyRange(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 7), // Saturday
		EndDate:   date(2026, 3, 8), // Sunday
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 2, 2),
	})

	assert.False(t, result.OK())
	assert.Equal(t, 0, result.Days)
	assert.Contains(t, result.Reasons, "no business days in range")
}

func TestCheckEligibility_InsufficientBalance(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 6),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20, UsedDays: 18},
		Now:       date(2026, 2, 2),
	})

	assert.False(t, result.OK())
	assert.Contains(t, result.Reasons, "insufficient balance: 5 requested, 2 available")
}

func TestCheckEligibility_MinNoticeViolated(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 6),
		Policy:    &policy.LeavePolicy{MaxDays: 20, MinNotice: 14},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 2, 25),
	})

	assert.False(t, result.OK())
	assert.Contains(t, result.Reasons,
		"insufficient advance notice: earliest permissible start date is 2026-03-11")
}

func TestCheckEligibility_StartInPast(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 6),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 3, 10),
	})

	assert.False(t, result.OK())
	assert.Contains(t, result.Reasons, "start date is in the past")
}

func TestCheckEligibility_EndBeforeStart(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 6),
		EndDate:   date(2026, 3, 2),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 2, 2),
	})

	assert.False(t, result.OK())
	assert.Equal(t, 0, result.Days)
	assert.Contains(t, result.Reasons, "end date is before start date")
}

// All violated rules must show up at once, not just the first one.
func TestCheckEligibility_AccumulatesAllReasons(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 6),
		Policy:    &policy.LeavePolicy{MaxDays: 20, MinNotice: 30},
		Balance:   &balance.LeaveBalance{TotalDays: 5, UsedDays: 4},
		Now:       date(2026, 3, 4),
	})

	assert.False(t, result.OK())
	assert.Contains(t, result.Reasons, "insufficient balance: 5 requested, 1 available")
	assert.Contains(t, result.Reasons, "start date is in the past")
	assert.Len(t, result.Reasons, 3) // plus the notice violation
}

func TestCheckEligibility_SameDaySingleBusinessDay(t *testing.T) {
	result := CheckEligibility(EligibilityInput{
		StartDate: date(2026, 3, 4), // Wednesday
		EndDate:   date(2026, 3, 4),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 2, 2),
	})

	assert.True(t, result.OK())
	assert.Equal(t, 1, result.Days)
}

func TestCheckEligibility_TimestampsNormalizedToDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	result := CheckEligibility(EligibilityInput{
		StartDate: time.Date(2026, 3, 2, 23, 45, 0, 0, loc),
		EndDate:   time.Date(2026, 3, 6, 1, 15, 0, 0, loc),
		Policy:    &policy.LeavePolicy{MaxDays: 20},
		Balance:   &balance.LeaveBalance{TotalDays: 20},
		Now:       date(2026, 2, 2),
	})

	assert.True(t, result.OK())
	assert.Equal(t, 5, result.Days)
}
