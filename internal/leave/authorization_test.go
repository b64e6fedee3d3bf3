package leave

import (
	"testing"

	"leavehub/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanActOnRequest_RoleMatrix(t *testing.T) {
	orgID := uuid.New()
	otherOrgID := uuid.New()
	managerID := uuid.New()
	otherManagerID := uuid.New()

	employee := &user.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Role:           user.RoleEmployee,
		ManagerID:      &managerID,
	}
	req := &LeaveRequest{
		ID:             uuid.New(),
		OrganizationID: orgID,
		EmployeeID:     employee.ID,
		Status:         StatusPending,
	}

	tests := []struct {
		name  string
		actor *user.User
		want  bool
	}{
		{
			name:  "admin acts on any request in the organization",
			actor: &user.User{ID: uuid.New(), OrganizationID: orgID, Role: user.RoleAdmin},
			want:  true,
		},
		{
			name:  "hr acts on any request in the organization",
			actor: &user.User{ID: uuid.New(), OrganizationID: orgID, Role: user.RoleHR},
			want:  true,
		},
		{
			name:  "direct manager acts on their report's request",
			actor: &user.User{ID: managerID, OrganizationID: orgID, Role: user.RoleManager},
			want:  true,
		},
		{
			name:  "manager of someone else is refused",
			actor: &user.User{ID: otherManagerID, OrganizationID: orgID, Role: user.RoleManager},
			want:  false,
		},
		{
			name:  "employee never approves, not even their own",
			actor: employee,
			want:  false,
		},
		{
			name:  "admin from another organization is refused",
			actor: &user.User{ID: uuid.New(), OrganizationID: otherOrgID, Role: user.RoleAdmin},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActOnRequest(tt.actor, employee, req))
		})
	}
}

func TestCanActOnRequest_NoManagerAssigned(t *testing.T) {
	orgID := uuid.New()
	employee := &user.User{ID: uuid.New(), OrganizationID: orgID, Role: user.RoleEmployee}
	req := &LeaveRequest{OrganizationID: orgID, EmployeeID: employee.ID}

	manager := &user.User{ID: uuid.New(), OrganizationID: orgID, Role: user.RoleManager}
	assert.False(t, CanActOnRequest(manager, employee, req))
}

// The reporting line is not transitive: a manager's manager cannot act.
func TestCanActOnRequest_GrandManagerRefused(t *testing.T) {
	orgID := uuid.New()
	grandManagerID := uuid.New()
	managerID := uuid.New()

	employee := &user.User{ID: uuid.New(), OrganizationID: orgID, Role: user.RoleEmployee, ManagerID: &managerID}
	req := &LeaveRequest{OrganizationID: orgID, EmployeeID: employee.ID}

	grandManager := &user.User{ID: grandManagerID, OrganizationID: orgID, Role: user.RoleManager}
	assert.False(t, CanActOnRequest(grandManager, employee, req))
}

func TestCanActOnRequest_NilInputs(t *testing.T) {
	assert.False(t, CanActOnRequest(nil, nil, nil))
}
