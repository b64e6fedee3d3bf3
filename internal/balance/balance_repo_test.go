package balance

import (
	"context"
	"database/sql"
	"testing"

	balanceerrors "leavehub/internal/balance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func newRepoFixture(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(nil, db), mock
}

func TestRepository_Reserve_Success(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reserve(context.Background(), orgID, empID, polID, 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_InsufficientBalance(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	// guard refused the update, the follow-up read explains why
	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT total_days - used_days").
		WithArgs(orgID, empID, polID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining"}).AddRow(2))

	err := repo.Reserve(context.Background(), orgID, empID, polID, 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance: 5 requested, 2 available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_BalanceRowMissing(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT total_days - used_days").
		WithArgs(orgID, empID, polID).
		WillReturnError(sql.ErrNoRows)

	err := repo.Reserve(context.Background(), orgID, empID, polID, 3)

	assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_RetriesSerializationFailure(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 2).
		WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reserve(context.Background(), orgID, empID, polID, 2)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_NonRetryableErrorFailsFast(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 2).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Reserve(context.Background(), orgID, empID, polID, 2)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Release_Success(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Release(context.Background(), orgID, empID, polID, 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Release_UnderflowRefused(t *testing.T) {
	repo, mock := newRepoFixture(t)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT total_days - used_days").
		WithArgs(orgID, empID, polID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining"}).AddRow(18))

	err := repo.Release(context.Background(), orgID, empID, polID, 10)

	assert.ErrorIs(t, err, balanceerrors.ErrReleaseUnderflow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTx_NoRetryInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRepository(nil, db)
	orgID, empID, polID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(orgID, empID, polID, 2).
		WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)

	err = repo.WithTx(tx).Reserve(context.Background(), orgID, empID, polID, 2)
	assert.Error(t, err)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
