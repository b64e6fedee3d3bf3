package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "leavehub/internal/balance/errors"
	"leavehub/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxLedgerAttempts = 3

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployeeAndPolicy(ctx context.Context, organizationID, employeeID, policyID string) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, organizationID, employeeID string) ([]LeaveBalance, error)
	Reserve(ctx context.Context, organizationID, employeeID, policyID string, days int) error
	Release(ctx context.Context, organizationID, employeeID, policyID string, days int) error
}

type repository struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	tx     *sql.Tx
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB, logger ...*zap.Logger) Repository {
	l := zap.L().Named("balance.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.repo")
	}
	return &repository{db: db, sqlDB: sqlDB, logger: l}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx, logger: r.logger}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployeeAndPolicy(ctx context.Context, organizationID, employeeID, policyID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("policy_id = ?", policyID).
		First(&b).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, organizationID, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("Policy").
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Find(&balances).Error
	return balances, err
}

// Reserve consumes days against the balance as one conditional update: the
// guard used_days + n <= total_days and the increment commit or fail together,
// so concurrent reservations can never over-commit the row.
func (r *repository) Reserve(ctx context.Context, organizationID, employeeID, policyID string, days int) error {
	query := `
UPDATE leave_balances
SET used_days = used_days + $4, updated_at = NOW()
WHERE organization_id = $1 AND employee_id = $2 AND policy_id = $3
	AND used_days + $4 <= total_days
`

	affected, err := r.execConditional(ctx, query, organizationID, employeeID, policyID, days)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	remaining, err := r.remainingDays(ctx, organizationID, employeeID, policyID)
	if err != nil {
		return err
	}
	return balanceerrors.InsufficientBalance(days, remaining)
}

// Release returns previously reserved days. A release that would underflow
// used_days is refused and reported as a consistency fault; the ledger never
// clamps silently.
func (r *repository) Release(ctx context.Context, organizationID, employeeID, policyID string, days int) error {
	query := `
UPDATE leave_balances
SET used_days = used_days - $4, updated_at = NOW()
WHERE organization_id = $1 AND employee_id = $2 AND policy_id = $3
	AND used_days >= $4
`

	affected, err := r.execConditional(ctx, query, organizationID, employeeID, policyID, days)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.remainingDays(ctx, organizationID, employeeID, policyID); err != nil {
		return err
	}

	r.logger.Error("balance release underflow refused",
		zap.String("organization_id", organizationID),
		zap.String("employee_id", employeeID),
		zap.String("policy_id", policyID),
		zap.Int("days", days),
	)
	return balanceerrors.ErrReleaseUnderflow
}

func (r *repository) execConditional(ctx context.Context, query string, organizationID, employeeID, policyID string, days int) (int64, error) {
	exec := r.execer()

	var lastErr error
	attempts := 1
	if r.tx == nil {
		// Bounded retry for transient lock failures. Inside a caller
		// transaction the whole tx is already doomed, so no retry there.
		attempts = maxLedgerAttempts
	}

	for i := 0; i < attempts; i++ {
		res, err := exec.ExecContext(ctx, query, organizationID, employeeID, policyID, days)
		if err == nil {
			return res.RowsAffected()
		}
		lastErr = err
		if !isRetryableTxError(err) {
			return 0, err
		}
		r.logger.Warn("ledger update retry",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
	}
	return 0, lastErr
}

func (r *repository) remainingDays(ctx context.Context, organizationID, employeeID, policyID string) (int, error) {
	query := `
SELECT total_days - used_days
FROM leave_balances
WHERE organization_id = $1 AND employee_id = $2 AND policy_id = $3
`

	var remaining int
	err := r.querier().QueryRowContext(ctx, query, organizationID, employeeID, policyID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, balanceerrors.ErrBalanceNotFound
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

// 40001 serialization_failure, 40P01 deadlock_detected
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
