package rbac_test

import (
	"testing"

	"leavehub/internal/domain"
	"leavehub/internal/rbac"
	"leavehub/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce_RoleMatrix(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"ADMIN", "leave", "approve", true},
		{"ADMIN", "leave", "delete", true},
		{"ADMIN", "balance", "provision", true},
		{"HR", "leave", "approve", true},
		{"HR", "leave", "delete", true},
		{"HR", "balance", "provision", true},
		{"MANAGER", "leave", "approve", true},
		{"MANAGER", "leave", "delete", false},
		{"MANAGER", "balance", "provision", false},
		{"EMPLOYEE", "leave", "create", true},
		{"EMPLOYEE", "leave", "cancel", true},
		{"EMPLOYEE", "leave", "approve", false},
		{"EMPLOYEE", "leave", "delete", false},
		{"EMPLOYEE", "balance", "read", true},
		{"EMPLOYEE", "balance", "provision", false},
		{"INTERN", "leave", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"_"+tt.resource+"_"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tt.role,
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

// Role strings from tokens come in with mixed casing and whitespace.
func TestService_Enforce_NormalizesRole(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		Role:     " hr ",
		Resource: "leave",
		Action:   "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
