// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// PriceBreakdown is an itemized stay price. All amounts are whole currency
// units, each component rounded at the point it is computed.
type PriceBreakdown struct {
	Nights         int    `json:"nights"`
	BasePrice      int64  `json:"base_price"`
	Subtotal       int64  `json:"subtotal"`
	CleaningFee    int64  `json:"cleaning_fee"`
	ServiceFee     int64  `json:"service_fee"`
	DiscountAmount int64  `json:"discount_amount"`
	DiscountPct    int    `json:"discount_pct"`
	Tax            int64  `json:"tax"`
	Total          int64  `json:"total"`
	Currency       string `json:"currency"`
}

type Booking struct {
	ID              int64          `json:"id"`
	BookingNumber   string         `json:"booking_number"`
	PropertyID      int64          `json:"property_id"`
	GuestID         int64          `json:"guest_id"`
	CheckIn         time.Time      `json:"check_in"`
	CheckOut        time.Time      `json:"check_out"`
	Price           PriceBreakdown `json:"price"`
	Status          BookingStatus  `json:"status"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	PaymentIntentID *string        `json:"payment_intent_id,omitempty"`
	CancelReason    *string        `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	ConfirmedAt     *time.Time     `json:"confirmed_at,omitempty"`
	CheckedInAt     *time.Time     `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time     `json:"checked_out_at,omitempty"`
	CancelledAt     *time.Time     `json:"cancelled_at,omitempty"`
}

// Reservation is the slim view of a booking used for overlap testing.
type Reservation struct {
	CheckIn  time.Time     `json:"check_in"`
	CheckOut time.Time     `json:"check_out"`
	Status   BookingStatus `json:"status"`
}
