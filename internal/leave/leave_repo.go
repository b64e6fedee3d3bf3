package leave

import (
	"context"
	"database/sql"
	"encoding/json"

	"leavehub/internal/tenant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*LeaveRequest, error)
	FindAllByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, organizationID, employeeID string, limit, offset int) ([]LeaveRequest, error)
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
	CountByEmployee(ctx context.Context, organizationID, employeeID string) (int64, error)
	UpdateStatusIfPending(ctx context.Context, organizationID, id, targetStatus string, approverID *string, rejectionReason *string) (bool, error)
	DeleteByIDAndStatus(ctx context.Context, organizationID, id, observedStatus string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	tx     *sql.Tx
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB, logger ...*zap.Logger) Repository {
	l := zap.L().Named("leave.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.repo")
	}
	return &repository{db: db, sqlDB: sqlDB, logger: l}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx, logger: r.logger}
}

// Create inserts through the raw execer so the insert can share the caller's
// transaction with the ledger reservation and the outbox row.
func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	notifyUsers, err := json.Marshal(lr.NotifyUsers)
	if err != nil {
		return err
	}

	query := `
INSERT INTO leave_requests (
	id, organization_id, employee_id, request_number, policy_id,
	leave_type, start_date, end_date, days, reason,
	status, notify_users, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
`

	_, err = r.execer().ExecContext(ctx, query,
		lr.ID, lr.OrganizationID, lr.EmployeeID, lr.RequestNumber, lr.PolicyID,
		lr.LeaveType, lr.StartDate, lr.EndDate, lr.Days, lr.Reason,
		lr.Status, notifyUsers,
	)
	return err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, organizationID, employeeID string, limit, offset int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *repository) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(organizationID)).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByEmployee(ctx context.Context, organizationID, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

// UpdateStatusIfPending is a compare-and-set: the update only lands while the
// row is still PENDING, so two concurrent transitions can never both win.
// Returns false when the row was no longer pending (or does not exist).
func (r *repository) UpdateStatusIfPending(ctx context.Context, organizationID, id, targetStatus string, approverID *string, rejectionReason *string) (bool, error) {
	query := `
UPDATE leave_requests
SET status = $3, approver_id = $4, rejection_reason = $5, updated_at = NOW()
WHERE organization_id = $1 AND id = $2 AND status = 'PENDING'
`

	res, err := r.execer().ExecContext(ctx, query, organizationID, id, targetStatus, approverID, rejectionReason)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteByIDAndStatus removes the row only if its status still matches what
// the caller observed, so the release decision made from that status stays
// valid inside the same transaction.
func (r *repository) DeleteByIDAndStatus(ctx context.Context, organizationID, id, observedStatus string) (bool, error) {
	query := `
DELETE FROM leave_requests
WHERE organization_id = $1 AND id = $2 AND status = $3
`

	res, err := r.execer().ExecContext(ctx, query, organizationID, id, observedStatus)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
