package leaveerrors

import (
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type for this organization",
		http.StatusBadRequest,
	)
	ErrPolicyInactive = apperror.New(
		apperror.CodeInvalidState,
		"leave policy is no longer active",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotEligible = apperror.New(
		apperror.CodeNotEligible,
		"leave request is not eligible",
		http.StatusUnprocessableEntity,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not pending",
		http.StatusConflict,
	)
	ErrStateChanged = apperror.New(
		apperror.CodeInvalidState,
		"leave request state changed, please re-fetch and retry",
		http.StatusConflict,
	)

	// Deliberately vague: authorization failures must not leak request details.
	ErrNotPermitted = apperror.New(
		apperror.CodeForbidden,
		"not permitted",
		http.StatusForbidden,
	)
	ErrCancelNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester may cancel their own pending request",
		http.StatusForbidden,
	)
	ErrDeleteNotPermitted = apperror.New(
		apperror.CodeForbidden,
		"only ADMIN or HR may delete leave requests",
		http.StatusForbidden,
	)
)
