package policy

import (
	"time"

	"github.com/google/uuid"
)

// LeavePolicy is the organization-scoped rule set for one leave type. Owned and
// edited elsewhere; this core reads it when validating and pricing requests.
// A policy edit never retroactively alters balances already reserved against it.
type LeavePolicy struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policies_org_name"`
	Name             string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_leave_policies_org_name"`
	MaxDays          int       `gorm:"type:int;not null"`
	CarryForward     int       `gorm:"type:int;not null;default:0"`
	RequiresApproval bool      `gorm:"not null;default:true"`
	MinNotice        int       `gorm:"type:int;not null;default:0"`
	Active           bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
