package booking

import "errors"

var (
	// ErrNotFound covers missing users, items and bookings, and bookings the
	// acting user is not authorized to see. The conflation is deliberate:
	// unauthorized callers must not learn whether a booking exists.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a business-rule violation on a well-formed request.
	ErrValidation = errors.New("validation error")
)
