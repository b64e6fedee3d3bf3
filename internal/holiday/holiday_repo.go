package holiday

import (
	"context"

	"leavehub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	FindAllByOrganization(ctx context.Context, organizationID string) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}
