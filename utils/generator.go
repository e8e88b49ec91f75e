package utils

import (
	"context"
	"math/rand"
	"time"

	"github.com/hostelites/hostelites-api/store"
)

const referenceLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingReference produces a short human-readable code that is not
// already taken by another booking.
func GenerateBookingReference(ctx context.Context, bookings store.BookingStore) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		taken, err := bookings.ReferenceExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}
