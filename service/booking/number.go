package booking

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const (
	bookingNumberPrefix = "STY"
	base36Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLen           = 4
)

// GenerateBookingNumber produces a human-readable identifier in the form
// STY-<base36 unix-ms>-<4 random base36 chars>. Collision resistance comes
// from timestamp plus randomness only; the bookings table still carries a
// unique constraint and the insert retries on conflict.
func GenerateBookingNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, suffixLen)
	raw := make([]byte, suffixLen)
	if _, err := rand.Read(raw); err == nil {
		for i := range raw {
			suffix[i] = base36Alphabet[int(raw[i])%len(base36Alphabet)]
		}
	} else {
		n := time.Now().UnixNano()
		for i := range suffix {
			suffix[i] = base36Alphabet[n%int64(len(base36Alphabet))]
			n /= int64(len(base36Alphabet))
		}
	}
	return bookingNumberPrefix + "-" + ts + "-" + string(suffix)
}
