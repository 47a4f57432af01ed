package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrMissingFields    = errors.New("missing required booking fields")
	ErrDateFormat       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidQuantity  = errors.New("rooms and guests must be whole numbers from 1 to 100")
)

// IsValidation reports whether err is a booking validation failure, as opposed
// to a storage error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrDateFormat) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidQuantity)
}
