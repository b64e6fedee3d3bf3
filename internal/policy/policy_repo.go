package policy

import (
	"context"

	"leavehub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	FindByNameAndOrganization(ctx context.Context, organizationID, name string) (*LeavePolicy, error)
	FindAllByOrganization(ctx context.Context, organizationID string) ([]LeavePolicy, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByNameAndOrganization(ctx context.Context, organizationID, name string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&p, "name = ?", name).Error
	return &p, err
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("name ASC").
		Find(&policies).Error
	return policies, err
}
