package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
	}
	return t, nil
}

// Nights returns checkOut - checkIn in whole calendar days. The result may be
// zero or negative; callers decide what range is acceptable.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	// both are UTC midnights; Unix seconds avoid Duration's ~292 year ceiling
	return int((out.Unix() - in.Unix()) / secondsPerDay), nil
}
