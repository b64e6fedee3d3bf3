package user

import (
	"context"

	"leavehub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&u, "id = ?", id).Error
	return &u, err
}
