package pairing

import (
	"errors"
	"fmt"
)

// PreconditionCode categorizes precondition violations.
type PreconditionCode string

const (
	// ErrCodeEmptyMentors indicates Assign was called with no mentors.
	ErrCodeEmptyMentors PreconditionCode = "EMPTY_MENTOR_POOL"

	// ErrCodeEmptyMentees indicates Assign was called with no mentees.
	ErrCodeEmptyMentees PreconditionCode = "EMPTY_MENTEE_POOL"
)

// PreconditionError reports a caller bug: Assign was given input it
// cannot produce a correct pairing set for.
type PreconditionError struct {
	Code    PreconditionCode
	Mentors int
	Mentees int
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: cannot assign %d mentor(s) to %d mentee(s)", e.Code, e.Mentors, e.Mentees)
}

// IsPreconditionError returns true if err is or wraps a PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
