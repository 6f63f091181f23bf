package library

import "errors"

var (
	// ErrValidation marks rejected input, such as a blank title. The
	// operation aborts before any row is written.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateList is returned when a list name collides with an
	// existing list under case-insensitive comparison.
	ErrDuplicateList = errors.New("list already exists")
)
