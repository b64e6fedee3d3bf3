package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

// LeaveRequest rows are hard-deleted by ADMIN/HR, so no soft-delete column.
// Days is the business-day count frozen at submission time; recomputing it
// later would break the ledger reservation taken against it.
type LeaveRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_org_status"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	RequestNumber  string    `gorm:"type:varchar(20);not null"`
	PolicyID       uuid.UUID `gorm:"type:uuid;not null"`

	LeaveType string    `gorm:"type:varchar(50);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Days      int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_org_status"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	NotifyUsers     []string   `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// isAllowedStatusTransition encodes the lifecycle: PENDING is the only
// non-terminal state.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus != StatusPending {
		return false
	}
	switch targetStatus {
	case StatusApproved, StatusRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

// holdsReservation reports whether a request in the given status still holds
// reserved days in the ledger. PENDING reserves at creation; APPROVED keeps
// the reservation; REJECTED and CANCELLED have already released it.
func holdsReservation(status string) bool {
	return status == StatusPending || status == StatusApproved
}
