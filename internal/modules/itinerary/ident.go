package itinerary

import (
	"strconv"

	"github.com/google/uuid"
)

// IDFunc produces activity identifiers. The only hard invariant is
// uniqueness within one itinerary; the format is deliberately unspecified.
type IDFunc func() string

// RandomIDs returns a generator backed by UUIDv4.
func RandomIDs() IDFunc {
	return func() string { return uuid.NewString() }
}

// SequentialIDs returns a generator that counts "1", "2", "3", ... matching
// the numbering scheme used when a whole itinerary is (re)generated at once.
func SequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}
