// Package length defines the unsigned integer widths that can be used as the
// length field of a compact collection.
//
// A collection parameterised by L can never hold more than Max[L]() elements.
// The narrower the width, the smaller the value that embeds the collection.
package length

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Length is the closed set of widths usable as a collection length.
// uint32 is bounded by the platform int, see Max.
type Length interface {
	~uint8 | ~uint16 | ~uint32
}

// Max returns the largest length representable by L on this platform.
func Max[L Length]() int {
	m := uint64(^L(0))
	if m > math.MaxInt {
		return math.MaxInt
	}
	return int(m)
}

// Zero returns the additive identity of L.
func Zero[L Length]() L {
	return 0
}

// TypeName returns the Go name of L, as reported in errors and diagnostics.
func TypeName[L Length]() string {
	return fmt.Sprintf("%T", L(0))
}

// Fits reports whether n elements can be described by L.
func Fits[L Length](n int) bool {
	return n >= 0 && n <= Max[L]()
}

// From converts n to L. It reports false instead of truncating when n is
// negative or larger than Max[L]().
func From[L Length, N constraints.Integer](n N) (L, bool) {
	if n < 0 {
		return 0, false
	}
	if uint64(n) > uint64(Max[L]()) {
		return 0, false
	}
	return L(n), true
}

// ToInt widens l to an int. It is lossless because Max never exceeds MaxInt.
func ToInt[L Length](l L) int {
	return int(l)
}

// NonZero is a length known to be at least one.
type NonZero[L Length] struct {
	v L
}

// NewNonZero wraps l, reporting false when l is zero.
func NewNonZero[L Length](l L) (NonZero[L], bool) {
	if l == 0 {
		return NonZero[L]{}, false
	}
	return NonZero[L]{v: l}, true
}

// Get returns the wrapped length. The zero NonZero returns 0, which callers
// use to detect an unset value.
func (n NonZero[L]) Get() L {
	return n.v
}
