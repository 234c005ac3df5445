package errors

import (
	"errors"
	"testing"
)

func TestNewInvalidArgumentError(t *testing.T) {
	cause := errors.New("name is required")
	err := NewInvalidArgumentError("validation failed", cause)

	if err.Type != ErrorTypeInvalidArgument {
		t.Errorf("NewInvalidArgumentError type = %v, want %v", err.Type, ErrorTypeInvalidArgument)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewInvalidArgumentError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "INVALID_ARGUMENT" {
		t.Errorf("NewInvalidArgumentError code = %v, want %v", err.Code, "INVALID_ARGUMENT")
	}
	if err.Cause != cause {
		t.Errorf("NewInvalidArgumentError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewUnresolvedReferenceError(t *testing.T) {
	err := NewUnresolvedReferenceError("user", 42)

	if err.Type != ErrorTypeInvalidArgument {
		t.Errorf("NewUnresolvedReferenceError type = %v, want %v", err.Type, ErrorTypeInvalidArgument)
	}
	if err.Message != "user with ID 42 not found" {
		t.Errorf("NewUnresolvedReferenceError message = %v", err.Message)
	}
	id, ok := err.GetContext("identifier")
	if !ok || id != int64(42) {
		t.Errorf("NewUnresolvedReferenceError should set identifier context")
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 123")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewDatabaseError("create task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: create task" {
		t.Errorf("NewDatabaseError message = %v, want %v", err.Message, "database operation failed: create task")
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewForbiddenError(t *testing.T) {
	err := NewForbiddenError("edit", "task")

	if err.Type != ErrorTypeForbidden {
		t.Errorf("NewForbiddenError type = %v, want %v", err.Type, ErrorTypeForbidden)
	}
	if err.Message != "permission denied for edit on task" {
		t.Errorf("NewForbiddenError message = %v", err.Message)
	}
	if err.Code != "FORBIDDEN" {
		t.Errorf("NewForbiddenError code = %v, want %v", err.Code, "FORBIDDEN")
	}
}

func TestNewUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("check", "task")

	if err.Type != ErrorTypeUnauthorized {
		t.Errorf("NewUnauthorizedError type = %v, want %v", err.Type, ErrorTypeUnauthorized)
	}
	if err.Message != "not authorized to check task" {
		t.Errorf("NewUnauthorizedError message = %v", err.Message)
	}
	operation, ok := err.GetContext("operation")
	if !ok || operation != "check" {
		t.Errorf("NewUnauthorizedError should set operation context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Type != ErrorTypeDatabase {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeInvalidArgument}
	regularError := errors.New("regular error")

	if !IsAppError(appError) {
		t.Errorf("IsAppError should return true for AppError")
	}
	if IsAppError(regularError) {
		t.Errorf("IsAppError should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := NewInvalidStateError("not clocked in")
	wrapped := WrapError(appError, ErrorTypeInvalidState, "clock out")

	if !IsErrorType(appError, ErrorTypeInvalidState) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if !IsErrorType(wrapped, ErrorTypeInvalidState) {
		t.Errorf("IsErrorType should see through wrapping")
	}
	if IsErrorType(errors.New("regular error"), ErrorTypeInvalidArgument) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Invalid argument error",
			err:      NewInvalidArgumentError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Invalid argument error with cause",
			err:      NewInvalidArgumentError("invalid input", errors.New("hours: must be positive")),
			expected: "invalid input: hours: must be positive",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "123"),
			expected: "task not found: 123",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("timeout")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", "5s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Forbidden error",
			err:      NewForbiddenError("delete", "time log"),
			expected: "permission denied for delete on time log",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewInvalidStateError("x")) != "INVALID_STATE" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Invalid argument error", NewInvalidArgumentError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("task", "123"), false},
		{"Invalid state error", NewInvalidStateError("already clocked in"), false},
		{"Unauthenticated error", NewUnauthenticatedError("missing token"), false},
		{"Forbidden error", NewForbiddenError("edit", "task"), true},
		{"Unauthorized error", NewUnauthorizedError("check", "task"), true},
		{"Database error", NewDatabaseError("query", errors.New("timeout")), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsSecurityEvent(t *testing.T) {
	if !IsSecurityEvent(NewForbiddenError("edit", "task")) {
		t.Errorf("forbidden should be a security event")
	}
	if !IsSecurityEvent(NewUnauthorizedError("check", "task")) {
		t.Errorf("unauthorized should be a security event")
	}
	if IsSecurityEvent(NewNotFoundError("task", "1")) {
		t.Errorf("not found should not be a security event")
	}
}
