package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one row per (employee, policy) per cycle. used_days is
// mutated only through Reserve/Release; remaining days are always derived as
// total_days - used_days, never stored.
type LeaveBalance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_policy"`
	PolicyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_policy"`
	TotalDays      int       `gorm:"type:int;not null"`
	UsedDays       int       `gorm:"type:int;not null;default:0"`
	CarryForward   int       `gorm:"type:int;not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Policy         *PolicyRef `gorm:"foreignKey:PolicyID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) RemainingDays() int {
	return b.TotalDays - b.UsedDays
}

type PolicyRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (PolicyRef) TableName() string {
	return "leave_policies"
}
