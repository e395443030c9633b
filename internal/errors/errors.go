// Package errors provides custom error types for the Security Master API.
// All service-layer errors should use AppError to ensure consistent,
// explainable error responses: the point of the registry is auditable
// rule enforcement, so every failure names the rule it violated.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional per-rule violation
// details, and an optional internal error.
type AppError struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
	StatusCode int      `json:"-"`
	Internal   error    `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithViolations creates a new AppError carrying the list of business
// rules that failed. All violations are reported together so the caller
// can fix them in one pass.
func WithViolations(sentinel *AppError, violations []string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Violations: violations,
		StatusCode: sentinel.StatusCode,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Golden record errors. Duplicate ISIN is deliberately distinct from
// VALIDATION_FAILED: its remediation is "look up the existing record",
// not "correct a field".
var (
	ErrSecurityNotFound  = &AppError{Code: "SECURITY_NOT_FOUND", Message: "Security not found", StatusCode: http.StatusNotFound}
	ErrDuplicateISIN     = &AppError{Code: "DUPLICATE_ISIN", Message: "A security already exists with that ISIN", StatusCode: http.StatusConflict}
	ErrValidationFailed  = &AppError{Code: "VALIDATION_FAILED", Message: "One or more business rules failed", StatusCode: http.StatusUnprocessableEntity}
	ErrEditReasonMissing = &AppError{Code: "EDIT_REASON_REQUIRED", Message: "An edit reason is required for every change", StatusCode: http.StatusBadRequest}
	ErrStaleRecord       = &AppError{Code: "STALE_RECORD", Message: "The record was modified by another session", StatusCode: http.StatusConflict}
)

// External collaborator errors.
var (
	ErrExternalLookup = &AppError{Code: "EXTERNAL_LOOKUP_FAILED", Message: "External identifier lookup failed", StatusCode: http.StatusBadGateway}
	ErrPersistence    = &AppError{Code: "PERSISTENCE_ERROR", Message: "The storage layer reported an error", StatusCode: http.StatusInternalServerError}
)
