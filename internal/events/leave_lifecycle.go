package events

import "time"

const LeaveLifecycleTopic = "leave.request.lifecycle.v1"

const (
	TypeLeaveRequested = "leave_requested"
	TypeLeaveApproved  = "leave_approved"
	TypeLeaveRejected  = "leave_rejected"
	TypeLeaveCancelled = "leave_cancelled"
)

// LeaveLifecycleEvent is emitted through the outbox on every request
// transition. The notifier consumer fans it out; delivery mechanics are not
// this service's concern.
type LeaveLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveID        string    `json:"leave_id"`
	RequestNumber  string    `json:"request_number"`
	OrganizationID string    `json:"organization_id"`
	EmployeeID     string    `json:"employee_id"`
	ActorID        string    `json:"actor_id,omitempty"`
	LeaveType      string    `json:"leave_type"`
	Days           int       `json:"days"`
	NotifyUsers    []string  `json:"notify_users,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
