package leave

type CreateLeaveRequest struct {
	LeaveType   string   `json:"leave_type" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Reason      string   `json:"reason"`
	NotifyUsers []string `json:"notify_users" binding:"omitempty,dive,uuid"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              string   `json:"id"`
	RequestNumber   string   `json:"request_number"`
	OrganizationID  string   `json:"organization_id"`
	EmployeeID      string   `json:"employee_id"`
	LeaveType       string   `json:"leave_type"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Days            int      `json:"days"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	ApproverID      *string  `json:"approver_id,omitempty"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	NotifyUsers     []string `json:"notify_users,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// EligibilityResponse is the dry-run result. Advisory only: the same checks
// run again inside Create, because holidays and balances can change between
// the dry run and the submit.
type EligibilityResponse struct {
	Eligible bool     `json:"eligible"`
	Days     int      `json:"days"`
	Reasons  []string `json:"reasons,omitempty"`
}
