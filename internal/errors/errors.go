package errors

import (
	"errors"
	"fmt"
)

// NewTaskNotFoundError creates an error for a lookup that matched zero tasks
func NewTaskNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewMultipleTasksFoundError creates an error for an ambiguous name-prefix lookup
func NewMultipleTasksFoundError(identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeMultipleFound,
		Message: fmt.Sprintf("Found multiple tasks for identifier: %s", identifier),
	}
}

// NewTaskValidationError creates an error for a failed text-format parse or
// semantic validation, carrying the human-readable cause
func NewTaskValidationError(cause string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("Task Validation Error: %s", cause),
	}
}

// NewNotInitializedError creates an error for a store whose tables do not exist yet
func NewNotInitializedError() *AppError {
	return &AppError{
		Type:    ErrorTypeNotInitialized,
		Message: "Run 'thunter init' to initialize the task database",
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
}

// NewInternalError creates an error for an internal consistency fault. These
// indicate a prior partial failure and are never silently tolerated.
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
	}
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

// ExitStatus maps an error to the process exit status the CLI reports.
func ExitStatus(err error) int {
	appErr, ok := AsAppError(err)
	if !ok {
		return 1
	}
	switch appErr.Type {
	case ErrorTypeNotFound:
		return 2
	case ErrorTypeMultipleFound:
		return 5
	case ErrorTypeValidation:
		return 6
	case ErrorTypeNotInitialized:
		return 7
	default:
		return 1
	}
}
