package leave

import (
	"leavehub/internal/user"
)

// CanActOnRequest decides whether the actor may approve or reject the given
// request. ADMIN and HR act on any request in their organization; a MANAGER
// only on direct reports (the reporting line is single-level, not
// transitive); EMPLOYEE never approves or rejects.
func CanActOnRequest(actor *user.User, requestEmployee *user.User, req *LeaveRequest) bool {
	if actor == nil || requestEmployee == nil || req == nil {
		return false
	}
	if actor.OrganizationID != req.OrganizationID {
		return false
	}
	if requestEmployee.OrganizationID != req.OrganizationID {
		return false
	}

	switch actor.Role {
	case user.RoleAdmin, user.RoleHR:
		return true
	case user.RoleManager:
		return requestEmployee.ManagerID != nil && *requestEmployee.ManagerID == actor.ID
	default:
		return false
	}
}
