package balanceerrors

import (
	"fmt"
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found for this organization",
		http.StatusNotFound,
	)
	ErrPolicyInactive = apperror.New(
		apperror.CodeInvalidState,
		"leave policy is no longer active",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave balance provisioned for this employee and policy",
		http.StatusNotFound,
	)
	ErrBalanceAlreadyProvisioned = apperror.New(
		apperror.CodeConflict,
		"leave balance already provisioned for this employee and policy",
		http.StatusConflict,
	)

	// ErrReleaseUnderflow indicates a bookkeeping bug: a release that would
	// push used_days below zero. The ledger refuses the write.
	ErrReleaseUnderflow = apperror.New(
		apperror.CodeConsistencyFault,
		"balance release would underflow used days",
		http.StatusInternalServerError,
	)
)

func InsufficientBalance(requested, available int) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("insufficient balance: %d requested, %d available", requested, available),
		http.StatusConflict,
	)
}
