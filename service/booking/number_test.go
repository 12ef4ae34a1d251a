package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var bookingNumberRe = regexp.MustCompile(`^STY-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestGenerateBookingNumber_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := GenerateBookingNumber()
		require.Regexp(t, bookingNumberRe, n)
	}
}

func TestGenerateBookingNumber_ConsecutiveDiffer(t *testing.T) {
	a := GenerateBookingNumber()
	b := GenerateBookingNumber()
	require.NotEqual(t, a, b)
}
