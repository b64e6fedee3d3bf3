package balance

import (
	"errors"
	"strings"

	balanceerrors "leavehub/internal/balance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balances_employee_policy" {
			return balanceerrors.ErrBalanceAlreadyProvisioned
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balances_employee_policy") {
		return balanceerrors.ErrBalanceAlreadyProvisioned
	}

	return err
}
