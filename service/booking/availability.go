package booking

import "stayneos/model"

// Blocks reports whether a reservation in this status prevents new
// overlapping bookings. Pending and cancelled reservations never block.
func Blocks(s model.BookingStatus) bool {
	return s == model.BookingConfirmed || s == model.BookingCheckedIn
}

// HasConflict tests the candidate stay against existing reservations.
// Ranges are half-open [checkIn, checkOut): the checkout day itself is not
// occupied, so same-day turnover is allowed.
func HasConflict(existing []model.Reservation, candidate StayRequest) bool {
	for _, r := range existing {
		if !Blocks(r.Status) {
			continue
		}
		if r.CheckIn.Before(candidate.CheckOut) && r.CheckOut.After(candidate.CheckIn) {
			return true
		}
	}
	return false
}
