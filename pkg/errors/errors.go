// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeInvalidInput     ErrorCode = "INVALID_INPUT"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Interpretation and capability errors
	CodeInterpretationParse   ErrorCode = "INTERPRETATION_PARSE_FAILED"
	CodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeInvalidInput, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeCapabilityUnavailable:
		return http.StatusServiceUnavailable
	case CodeInterpretationParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error constructors for common scenarios

// NewInvalidInputError creates an invalid input error for caller mistakes
// such as empty or malformed query text
func NewInvalidInputError(message string) *AppError {
	if message == "" {
		message = "Invalid input"
	}
	return NewAppError(CodeInvalidInput, message, "")
}

// NewInterpretationParseError creates an error for non-structured or
// truncated completion output. The raw response is carried as metadata so
// the caller deciding on fallback can log it.
func NewInterpretationParseError(raw string, cause error) *AppError {
	return NewAppError(
		CodeInterpretationParse,
		"Failed to parse completion output",
		"The completion capability returned non-structured output",
	).WithMetadata("raw_response", raw).WithCause(cause)
}

// NewCapabilityUnavailableError creates an error for an unconfigured or
// unreachable completion capability
func NewCapabilityUnavailableError(provider string, cause error) *AppError {
	return NewAppError(
		CodeCapabilityUnavailable,
		"Completion capability unavailable",
		fmt.Sprintf("Provider %s is not configured or did not respond", provider),
	).WithMetadata("provider", provider).WithCause(cause)
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Utility functions

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// As extracts the AppError from an error chain, if any
func As(err error, target **AppError) bool {
	if appErr, ok := err.(*AppError); ok {
		*target = appErr
		return true
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// RawResponse extracts the raw completion output attached to an
// interpretation parse error, if any
func RawResponse(err error) string {
	appErr, ok := err.(*AppError)
	if !ok || appErr.Metadata == nil {
		return ""
	}
	raw, _ := appErr.Metadata["raw_response"].(string)
	return raw
}
