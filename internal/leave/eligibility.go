package leave

import (
	"fmt"
	"time"

	"leavehub/internal/balance"
	"leavehub/internal/calendar"
	"leavehub/internal/holiday"
	"leavehub/internal/policy"
)

type EligibilityInput struct {
	StartDate time.Time
	EndDate   time.Time
	Policy    *policy.LeavePolicy
	Balance   *balance.LeaveBalance
	Holidays  []holiday.Holiday
	Now       time.Time
}

type EligibilityResult struct {
	Days    int
	Reasons []string
}

func (r EligibilityResult) OK() bool {
	return len(r.Reasons) == 0
}

// CheckEligibility evaluates every rule and accumulates every violation, so a
// caller can show all of them at once. Pure over its inputs: "now" is a
// parameter, never the wall clock.
func CheckEligibility(in EligibilityInput) EligibilityResult {
	var result EligibilityResult

	start := startOfDay(in.StartDate)
	end := startOfDay(in.EndDate)
	today := startOfDay(in.Now)

	rangeValid := !end.Before(start)
	if rangeValid {
		result.Days = calendar.CountBusinessDays(start, end, in.Holidays)
		if result.Days == 0 {
			result.Reasons = append(result.Reasons, "no business days in range")
		}
	}

	if result.Days > 0 && in.Balance != nil && result.Days > in.Balance.RemainingDays() {
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"insufficient balance: %d requested, %d available",
			result.Days, in.Balance.RemainingDays(),
		))
	}

	if in.Policy != nil && in.Policy.MinNotice > 0 {
		noticeDays := int(start.Sub(today).Hours() / 24)
		if noticeDays < in.Policy.MinNotice {
			earliest := today.AddDate(0, 0, in.Policy.MinNotice)
			result.Reasons = append(result.Reasons, fmt.Sprintf(
				"insufficient advance notice: earliest permissible start date is %s",
				earliest.Format("2006-01-02"),
			))
		}
	}

	if start.Before(today) {
		result.Reasons = append(result.Reasons, "start date is in the past")
	}

	if !rangeValid {
		result.Reasons = append(result.Reasons, "end date is before start date")
	}

	return result
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
