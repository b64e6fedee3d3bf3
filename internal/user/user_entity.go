package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// User is the read model of the identity service's directory. This core never
// writes to it; it only needs role and reporting line for authorization.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FullName       string     `gorm:"column:full_name"`
	Email          string     `gorm:"column:email"`
	Role           string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	ManagerID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}

func IsPrivilegedRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	default:
		return false
	}
}
