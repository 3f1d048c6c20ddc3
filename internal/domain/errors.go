package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries every problem found in an input. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a *ValidationError with the given problems.
func NewValidationError(problems ...string) error {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(e.Problems, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// validationResult builds a ValidationError from collected problems, or nil when there are none.
func validationResult(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
