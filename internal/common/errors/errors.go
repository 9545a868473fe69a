// Package errors provides standardized error handling for the pricing engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeUnknownField         ErrorCode = "UNKNOWN_FIELD"
	ErrCodeUnknownProgram       ErrorCode = "UNKNOWN_PROGRAM"
	ErrCodeConfigurationError   ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeDataValidationFailed ErrorCode = "DATA_VALIDATION_FAILED"
	ErrCodeDataSourceFailed     ErrorCode = "DATA_SOURCE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidInputError creates a non-retryable error for out-of-range parameters.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid pricing input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFieldError creates a non-retryable error for a field name
// missing from the loaded risk table.
func NewUnknownFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownField,
		Message:   "Field not found in risk table",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownProgramError creates a non-retryable error for a graduate
// program missing from the loaded program table.
func NewUnknownProgramError(program string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownProgram,
		Message:   "Program not found in graduate table",
		Details:   fmt.Sprintf("program: %s", program),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a non-retryable error for invalid engine
// configuration such as ensemble weights not summing to 1.0 or misordered
// fairness thresholds.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationError,
		Message:   "Invalid pricing configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataValidationFailedError creates a non-retryable error for risk
// tables that fail schema or range validation at load time.
func NewDataValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataValidationFailed,
		Message:   "Risk data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataSourceFailedError creates a retryable error for failures reading
// a risk table from its backing source.
func NewDataSourceFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataSourceFailed,
		Message:   "Risk data source error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the error code from err, or empty string when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
