package errors

import (
	"net/http"

	"usergate/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors of the same kind, so copies carrying extra details
// still compare equal to their predefined value under errors.Is.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// Predefined error types
var (
	// ErrValidation covers caller-supplied empty required fields. Recoverable:
	// the web layer re-prompts.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"All fields are required",
		"",
	)

	// ErrRegistrationFailed surfaces a duplicate-login insert. Recoverable:
	// the web layer re-prompts with another login.
	ErrRegistrationFailed = NewBaseError(
		http.StatusConflict,
		"REGISTRATION_FAILED",
		"This login is already taken",
		"",
	)

	// ErrInvalidCredentials deliberately merges "unknown login" and "wrong
	// password" into one message to resist login enumeration.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid login or password",
		"",
	)

	// ErrUpdateFailed is returned when the target row vanished between the
	// session being established and the write.
	ErrUpdateFailed = NewBaseError(
		http.StatusConflict,
		"UPDATE_FAILED",
		"Account could not be updated",
		"",
	)

	// ErrIllegalState marks an operation invoked from the wrong identity
	// state (e.g. update while anonymous). A programming error behind a
	// correct web layer: fatal to the request, not to the process.
	ErrIllegalState = NewBaseError(
		http.StatusInternalServerError,
		"ILLEGAL_STATE",
		"Operation not allowed in the current session state",
		"",
	)

	// ErrStoreUnavailable covers connection/query failures. The raw storage
	// error text goes to the logs, never to the end user.
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"Service temporarily unavailable, please try again",
		"",
	)

	// ErrUnauthorized is returned by the delivery layer for missing or
	// invalid session tokens.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	// ErrInternal is the fallback for anything unmapped.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)
