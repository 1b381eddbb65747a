package item

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrForbidden marks edits by someone other than the item's owner. Unlike
	// bookings, item existence is public, so this does not fold into NotFound.
	ErrForbidden = errors.New("forbidden")
)
