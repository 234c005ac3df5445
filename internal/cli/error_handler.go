package cli

import (
	stderrors "errors"
	"fmt"

	"work-tracker/internal/errors"
	"work-tracker/internal/validation"
)

// Exit codes returned by the wt binary
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitDenied       = 3
	ExitNotFound     = 4
	ExitConflict     = 5
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// handledError carries a user-facing message while keeping the wrapped
// error reachable for ExitCode.
type handledError struct {
	message string
	cause   error
}

func (e *handledError) Error() string { return e.message }
func (e *handledError) Unwrap() error { return e.cause }

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) && !errors.IsAppError(err) {
		return &handledError{fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()), err}
	}

	if errors.IsAppError(err) {
		return &handledError{fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	var handled *handledError
	if stderrors.As(err, &handled) {
		return handled
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) && !errors.IsAppError(err) {
		return &handledError{validationErr.GetUserFriendlyMessage(), err}
	}

	if errors.IsAppError(err) {
		return &handledError{errors.GetUserMessage(err), err}
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeInvalidArgument)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// ExitCode maps an error onto the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return ExitInvalidInput
	case errors.IsSecurityEvent(err), errors.IsErrorType(err, errors.ErrorTypeUnauthenticated):
		return ExitDenied
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case errors.IsErrorType(err, errors.ErrorTypeInvalidState):
		return ExitConflict
	default:
		return ExitFailure
	}
}
