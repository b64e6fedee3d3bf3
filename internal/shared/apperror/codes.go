package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeNotEligible  = "NOT_ELIGIBLE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeConsistencyFault   = "CONSISTENCY_FAULT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
