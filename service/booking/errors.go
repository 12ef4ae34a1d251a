package booking

import "errors"

// errors used by controllers

type ErrCode string

const (
	ErrInvalidDate      ErrCode = "INVALID_DATE"
	ErrPastCheckIn      ErrCode = "PAST_CHECK_IN"
	ErrInvalidRange     ErrCode = "INVALID_RANGE"
	ErrBelowMinStay     ErrCode = "BELOW_MINIMUM_STAY"
	ErrAboveMaxStay     ErrCode = "ABOVE_MAXIMUM_STAY"
	ErrPropertyNotFound ErrCode = "PROPERTY_NOT_FOUND"
	ErrConflict         ErrCode = "DATES_UNAVAILABLE"
	ErrNotFound         ErrCode = "BOOKING_NOT_FOUND"
	ErrNotOwner         ErrCode = "NOT_OWNER"
	ErrAlreadyCancelled ErrCode = "ALREADY_CANCELLED"
	ErrNotCancellable   ErrCode = "NOT_CANCELLABLE"
	ErrNotConfirmed     ErrCode = "NOT_CONFIRMED"
	ErrNotCheckedIn     ErrCode = "NOT_CHECKED_IN"
	ErrBadTransition    ErrCode = "INVALID_TRANSITION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
