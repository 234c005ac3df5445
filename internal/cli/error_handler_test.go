package cli

import (
	"errors"
	"testing"

	apperrors "work-tracker/internal/errors"
	"work-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
)

func requiredNameError() error {
	ve := validation.NewValidationError()
	ve.AddRequiredError("name")
	return ve
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "should use the field message of a validation error",
			operation: "create project",
			err:       requiredNameError(),
			expected:  "failed to create project: name is required",
		},
		{
			name:      "should use the message of a not found error",
			operation: "issue token",
			err:       apperrors.NewNotFoundError("user", "rita"),
			expected:  "failed to issue token: user not found: rita",
		},
		{
			name:      "should hide database details",
			operation: "create user",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk I/O error")),
			expected:  "failed to create user: A database error occurred. Please try again.",
		},
		{
			name:      "should wrap a plain error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)

			assert.EqualError(t, result, tt.expected)
		})
	}
}

func TestErrorHandler_Handle_KeepsPlainCause(t *testing.T) {
	cause := errors.New("regular error")

	err := NewErrorHandler().Handle("process", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "should use the field message of a validation error",
			err:      requiredNameError(),
			expected: "name is required",
		},
		{
			name:     "should use the message of an invalid state error",
			err:      apperrors.NewInvalidStateError("already clocked in"),
			expected: "already clocked in",
		},
		{
			name:     "should hide database details",
			err:      apperrors.NewDatabaseError("insert", errors.New("disk I/O error")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "should pass a plain error through",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_KeepsErrorTypeForExitCode(t *testing.T) {
	eh := NewErrorHandler()
	handled := eh.Handle("issue token", apperrors.NewNotFoundError("user", "rita"))

	assert.Equal(t, ExitNotFound, eh.ExitCode(handled))
	assert.EqualError(t, eh.HandleSimple(handled), "failed to issue token: user not found: rita")
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "should succeed without an error", err: nil, expected: 0},
		{name: "should flag a validation error", err: requiredNameError(), expected: ExitInvalidInput},
		{name: "should flag an invalid argument", err: apperrors.NewInvalidInputError("month", 13, "must be between 1 and 12"), expected: ExitInvalidInput},
		{name: "should flag a forbidden operation", err: apperrors.NewForbiddenError("delete", "task"), expected: ExitDenied},
		{name: "should flag an unauthorized operation", err: apperrors.NewUnauthorizedError("check", "task"), expected: ExitDenied},
		{name: "should flag a missing identity", err: apperrors.NewUnauthenticatedError("no token"), expected: ExitDenied},
		{name: "should flag a missing resource", err: apperrors.NewNotFoundError("user", "rita"), expected: ExitNotFound},
		{name: "should flag a state conflict", err: apperrors.NewInvalidStateError("not done"), expected: ExitConflict},
		{name: "should fall back to failure", err: errors.New("boom"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.ExitCode(tt.err))
		})
	}
}

func TestErrorHandler_Predicates(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsValidationError(requiredNameError()))
	assert.True(t, eh.IsValidationError(validation.ToInvalidArgument("invalid request", requiredNameError())))
	assert.False(t, eh.IsValidationError(apperrors.NewNotFoundError("user", "1")))
	assert.True(t, eh.IsNotFoundError(apperrors.NewNotFoundError("user", "1")))
	assert.False(t, eh.IsNotFoundError(errors.New("not found")))
}
