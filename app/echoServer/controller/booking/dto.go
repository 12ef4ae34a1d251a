package booking

// QuoteReq prices a stay for a property without booking it.
// swagger:model QuoteReq
type QuoteReq struct {
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests" validate:"min=0"`
}

// CreateBookingReq is the booking creation payload. Dates are YYYY-MM-DD.
// swagger:model CreateBookingReq
type CreateBookingReq struct {
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Guests     int    `json:"guests" validate:"min=0"`
}

// CancelBookingReq carries the optional cancellation reason.
// swagger:model CancelBookingReq
type CancelBookingReq struct {
	Reason string `json:"reason"`
}
