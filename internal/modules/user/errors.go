package user

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an email address already held by another user.
	ErrConflict = errors.New("conflict")
)
