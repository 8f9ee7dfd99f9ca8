package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInsufficientCredits indicates that a payer's balance does not cover the requested amount.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrUpstream indicates that a dependent service could not be reached or kept failing.
var ErrUpstream = errors.New("upstream service unavailable")

// ErrInternal indicates an unclassified internal failure.
var ErrInternal = errors.New("internal error")

// Stable machine-readable codes carried on error responses so callers do not
// have to parse message text.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeDuplicate           = "DUPLICATE"
	CodeConflict            = "CONFLICT"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError wraps a sentinel with an HTTP status, a stable code and a caller-safe message.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(status int, code string, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}
