package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrMemberNotFound is returned when a household member is not found
	ErrMemberNotFound = errors.New("member not found")

	// ErrHouseholdNotFound is returned when a household is not found
	ErrHouseholdNotFound = errors.New("household not found")
)
