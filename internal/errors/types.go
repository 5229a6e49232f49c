package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeNotFound ErrorType = iota
	ErrorTypeMultipleFound
	ErrorTypeValidation
	ErrorTypeNotInitialized
	ErrorTypeDatabase
	ErrorTypeInternal
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeMultipleFound:
		return "multiple_found"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotInitialized:
		return "not_initialized"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error. Messages are plain text
// so any presentation layer can style them.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}
