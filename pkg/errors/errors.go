// Package errors provides custom error types for the application.
// It defines domain-specific errors with error codes for better error handling and API responses.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents application error codes
type ErrorCode string

// Error codes for different error categories
const (
	// General errors (1xxx)
	ErrCodeInternal   ErrorCode = "E1000"
	ErrCodeValidation ErrorCode = "E1001"
	ErrCodeNotFound   ErrorCode = "E1002"
	ErrCodeConflict   ErrorCode = "E1003"

	// Template errors (2xxx)
	ErrCodeTemplateNotFound ErrorCode = "E2001"
	ErrCodeTemplateRender   ErrorCode = "E2002"

	// Manifest errors (3xxx)
	ErrCodeUnsupportedVersion ErrorCode = "E3001"

	// Archive errors (4xxx)
	ErrCodeInvalidPath  ErrorCode = "E4001"
	ErrCodeArchiveWrite ErrorCode = "E4002"
	ErrCodeNoContent    ErrorCode = "E4003"

	// Output validation errors (5xxx)
	ErrCodeValidationFailed ErrorCode = "E5001"

	// Configuration errors (6xxx)
	ErrCodeConfigNotFound ErrorCode = "E6001"
	ErrCodeConfigInvalid  ErrorCode = "E6002"
	ErrCodeConfigParse    ErrorCode = "E6003"

	// Storage errors (7xxx)
	ErrCodeProjectStorage ErrorCode = "E7001"
	ErrCodeMediaStorage   ErrorCode = "E7002"
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for the error
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeTemplateNotFound, ErrCodeConfigNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeUnsupportedVersion, ErrCodeInvalidPath, ErrCodeNoContent:
		return http.StatusBadRequest
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Common error constructors for convenience

// ErrInternal creates an internal error
func ErrInternal(message string, err error) *AppError {
	return Wrap(ErrCodeInternal, message, err)
}

// ErrValidation creates a validation error
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrNotFound creates a not found error
func ErrNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// ErrTemplate creates a template rendering error
func ErrTemplate(message string, err error) *AppError {
	return Wrap(ErrCodeTemplateRender, message, err)
}

// ErrUnsupportedVersion creates an error for an unrecognized SCORM version string
func ErrUnsupportedVersion(version string) *AppError {
	return New(ErrCodeUnsupportedVersion, fmt.Sprintf("invalid SCORM version: %s", version))
}

// ErrInvalidPath creates an archive-slip rejection error
func ErrInvalidPath(path string) *AppError {
	return New(ErrCodeInvalidPath, fmt.Sprintf("invalid archive entry path: %s", path))
}

// ErrArchiveWrite creates an archive write failure error
func ErrArchiveWrite(message string, err error) *AppError {
	return Wrap(ErrCodeArchiveWrite, message, err)
}

// ErrNoContent creates an error for a build that produced no artifacts
func ErrNoContent() *AppError {
	return New(ErrCodeNoContent, "no artifacts supplied and internal generation disabled")
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError attempts to convert an error to AppError
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}
