package model

import "time"

// Property is a bookable listing. Prices are whole currency units per night.
type Property struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	NightlyPrice       int64     `json:"nightly_price"`
	Currency           string    `json:"currency"`
	CleaningFee        int64     `json:"cleaning_fee"`
	MinNights          int       `json:"min_nights"`
	MaxNights          int       `json:"max_nights"`
	MonthlyDiscountPct int       `json:"monthly_discount_pct"`
	CreatedAt          time.Time `json:"created_at"`
}
