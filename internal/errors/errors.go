package errors

import (
	"errors"
	"fmt"
)

// NewInvalidArgumentError creates an error for malformed or missing input.
// cause is usually a *validation.ValidationError carrying the field details.
func NewInvalidArgumentError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: message,
		Code:    "INVALID_ARGUMENT",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates an invalid argument error for a single field
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_ARGUMENT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewUnresolvedReferenceError reports a foreign id that does not resolve
func NewUnresolvedReferenceError(resource string, id int64) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf("%s with ID %d not found", resource, id),
		Code:    "INVALID_ARGUMENT",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": id,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewForbiddenError is returned when the acting user holds no role that permits the operation
func NewForbiddenError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: fmt.Sprintf("permission denied for %s on %s", operation, resource),
		Code:    "FORBIDDEN",
		Context: map[string]interface{}{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// NewUnauthorizedError is returned when the acting user is not the designated party for an operation
func NewUnauthorizedError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: fmt.Sprintf("not authorized to %s %s", operation, resource),
		Code:    "UNAUTHORIZED",
		Context: map[string]interface{}{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// NewInvalidStateError reports a violated state precondition
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: message,
		Code:    "INVALID_STATE",
		Context: make(map[string]interface{}),
	}
}

// NewUnauthenticatedError reports a request without a usable identity
func NewUnauthenticatedError(reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: reason,
		Code:    "UNAUTHENTICATED",
		Context: make(map[string]interface{}),
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidArgument, ErrorTypeNotFound, ErrorTypeInvalidState,
			ErrorTypeForbidden, ErrorTypeUnauthorized, ErrorTypeUnauthenticated:
			if appErr.Cause != nil && appErr.Type == ErrorTypeInvalidArgument {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged at error level
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidArgument, ErrorTypeNotFound, ErrorTypeInvalidState, ErrorTypeUnauthenticated:
			return false // caller-correctable
		case ErrorTypeForbidden, ErrorTypeUnauthorized:
			return true // security relevant
		default:
			return true
		}
	}
	return true
}

// IsSecurityEvent reports whether err is a role or ownership denial
func IsSecurityEvent(err error) bool {
	return IsErrorType(err, ErrorTypeForbidden) || IsErrorType(err, ErrorTypeUnauthorized)
}
