package submissions

import "errors"

var (
	// ErrNotFound indicates a submission was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
