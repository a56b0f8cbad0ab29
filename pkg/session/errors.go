package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no record has the given id.
	ErrNotFound = errors.New("session: not found")

	// ErrInvalidSchedule is returned when a sweep schedule cannot be parsed.
	ErrInvalidSchedule = errors.New("session: invalid sweep schedule")
)
