package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrVersionConflict is returned when a conditional update observes
	// a version other than the one it expected. Callers re-read and retry.
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicateEmail is returned when a user email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
