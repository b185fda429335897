package domain

import "errors"

var (
	// ErrNotFound means the entity is absent from the source. A normal
	// outcome, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means the source could not be reached within the
	// attempt budget. Callers surface "no data available" to the user and
	// never substitute fabricated values.
	ErrUnavailable = errors.New("source unavailable")

	// ErrBlocked means the source answered but refused automated access.
	// Handled like ErrUnavailable after retries are exhausted.
	ErrBlocked = errors.New("access blocked")
)
