package booking

import (
	"math"

	"stayneos/model"
)

const (
	monthlyStayNights = 28
	serviceFeeRate    = 0.10
	taxRate           = 0.13
)

// CalculatePrice itemizes a stay price. Each component is rounded half-up at
// the step it is computed, not once at the end; the order of steps changes
// totals and must stay as-is.
func CalculatePrice(basePrice int64, nights int, cleaningFee int64, monthlyDiscountPct int, currency string) model.PriceBreakdown {
	discountRate := 1.0
	discountPct := 0
	if nights >= monthlyStayNights && monthlyDiscountPct > 0 {
		discountRate = float64(100-monthlyDiscountPct) / 100
		discountPct = monthlyDiscountPct
	}

	discountedNightly := roundHalfUp(float64(basePrice) * discountRate)
	subtotal := int64(nights) * discountedNightly
	serviceFee := roundHalfUp(float64(subtotal) * serviceFeeRate)
	discountAmount := int64(nights)*basePrice - subtotal
	tax := roundHalfUp(float64(subtotal+cleaningFee+serviceFee) * taxRate)

	return model.PriceBreakdown{
		Nights:         nights,
		BasePrice:      basePrice,
		Subtotal:       subtotal,
		CleaningFee:    cleaningFee,
		ServiceFee:     serviceFee,
		DiscountAmount: discountAmount,
		DiscountPct:    discountPct,
		Tax:            tax,
		Total:          subtotal + cleaningFee + serviceFee + tax,
		Currency:       currency,
	}
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
