// Package errors provides structured error types for gridtile.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the grid engine, CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Placement failures reported by the grid engine:
//   - OUT_OF_BOUNDS: row or column outside the grid
//   - SLOT_OCCUPIED: the target slot is already covered by a widget
//   - GRID_FULL: no empty slot is left for automatic placement
//
// None of them are fatal. The engine logs them, skips the offending
// placement and leaves the grid unchanged.
//
// Everything else follows a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfBounds, "row index %d is outside grid", row)
//	if errors.Is(err, errors.ErrCodeOutOfBounds) {
//	    // Handle placement error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Placement errors
	ErrCodeOutOfBounds  Code = "OUT_OF_BOUNDS"
	ErrCodeSlotOccupied Code = "SLOT_OCCUPIED"
	ErrCodeGridFull     Code = "GRID_FULL"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsPlacement reports whether err is one of the non-fatal placement errors.
func IsPlacement(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeSlotOccupied, ErrCodeGridFull:
		return true
	}
	return false
}

// IsInvalid reports whether err was caused by bad input.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScene, ErrCodeInvalidFormat,
		ErrCodeInvalidPolicy:
		return true
	}
	return false
}
