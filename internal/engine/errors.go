package engine

import (
	"errors"
	"fmt"
)

// ErrAlreadyRecorded is reported when the recorder already holds a session
// with the same id and nothing was written.
var ErrAlreadyRecorded = errors.New("session already recorded")

// RuntimeError represents an error detected while generating a session.
//
// Runtime errors include:
//   - Validation: a pool is empty or contains unusable participants
//   - Record failure: the session could not be persisted
//   - Report failure: a report emitter failed
//
// Validation errors abort the run. Record and report failures are carried
// in Result.Warnings and never discard the computed pairings.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// SessionID identifies the affected session, if one was allocated.
	SessionID string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeValidation indicates the request cannot produce a session.
	ErrCodeValidation RuntimeErrorCode = "VALIDATION"

	// ErrCodeRecordFailed indicates the session recorder failed.
	ErrCodeRecordFailed RuntimeErrorCode = "RECORD_FAILED"

	// ErrCodeReportFailed indicates a report emitter failed.
	ErrCodeReportFailed RuntimeErrorCode = "REPORT_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.SessionID != "" {
		msg += fmt.Sprintf(" (session=%s)", e.SessionID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsValidationError returns true if the error is a validation error.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsRecordError returns true if the error is a recorder failure.
func IsRecordError(err error) bool {
	return hasCode(err, ErrCodeRecordFailed)
}

// IsReportError returns true if the error is an emitter failure.
func IsReportError(err error) bool {
	return hasCode(err, ErrCodeReportFailed)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewValidationError creates a RuntimeError for an unusable request.
func NewValidationError(format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}
