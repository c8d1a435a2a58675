// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors are returned by use cases and
// mapped to user-facing messages or HTTP status codes by the outer layers.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	// Operations returning it must not have reached the network.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates there is no usable authenticated session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a transport failure: the remote authority could not be
	// reached or answered with something other than a business response.
	ErrUnavailable = errors.New("service unavailable")

	// ErrProblem indicates the remote authority explicitly rejected a request.
	ErrProblem = errors.New("domain problem")

	// ErrInvalidTransition indicates a state-gated operation was invoked from a state
	// that does not allow it.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// ProblemError carries the business-rule rejection returned by the remote authority.
// Its message is meant to be shown to the user verbatim.
type ProblemError struct {
	Message string
}

// NewProblem creates a ProblemError with the given message.
func NewProblem(message string) *ProblemError {
	return &ProblemError{Message: strings.TrimSpace(message)}
}

// Error returns the problem message.
func (e *ProblemError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrProblem) hold for every ProblemError.
func (e *ProblemError) Unwrap() error {
	return ErrProblem
}

// ProblemMessage extracts the verbatim problem message from err, if it carries one.
func ProblemMessage(err error) (string, bool) {
	var problem *ProblemError
	if errors.As(err, &problem) {
		return problem.Message, true
	}
	return "", false
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
