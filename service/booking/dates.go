package booking

import "time"

const day = 24 * time.Hour

// StayRequest is a candidate stay, constructed per pricing/booking attempt.
type StayRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Nights counts billable nights between check-in and check-out, rounding
// partial days up.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}

// ValidateStay checks a candidate date range at day granularity against
// "today" and the property's minimum stay. today is a parameter so callers
// control the clock.
func ValidateStay(checkIn, checkOut time.Time, minNights int, today time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return makeErr(ErrInvalidDate)
	}
	if dateOnly(checkIn).Before(dateOnly(today)) {
		return makeErr(ErrPastCheckIn)
	}
	if !dateOnly(checkOut).After(dateOnly(checkIn)) {
		return makeErr(ErrInvalidRange)
	}
	if Nights(checkIn, checkOut) < minNights {
		return makeErr(ErrBelowMinStay)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
