// Package array implements FixedArray, a slice replacement that stores only a
// data pointer and a narrow length.
//
// A FixedArray cannot grow or shrink. To change its shape convert it back with
// IntoSlice, edit the slice, and convert forward again.
package array

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/quickwritereader/smallfixed/length"
)

// FixedArray is a fixed size array whose length is stored as an L.
//
// The zero value is an empty array and owns no memory. A non-empty
// FixedArray exclusively owns its buffer: slices handed to the constructors
// must not be used by the caller afterwards.
type FixedArray[T any, L length.Length] struct {
	_ [0]func() // incomparable: == would compare buffer identity

	inner nonEmpty[T, L]
}

// New returns an empty FixedArray.
func New[T any, L length.Length]() FixedArray[T, L] {
	return FixedArray[T, L]{}
}

// TryFromSlice takes ownership of s without copying it.
//
// It fails with *length.InvalidLength[T] when s holds more than
// length.Max[L]() elements; the error hands s back. An empty s yields the
// empty array and is not retained.
func TryFromSlice[L length.Length, T any](s []T) (FixedArray[T, L], error) {
	if !length.Fits[L](len(s)) {
		return FixedArray[T, L]{}, length.NewInvalidLength[T, L](s)
	}
	if len(s) == 0 {
		return FixedArray[T, L]{}, nil
	}
	inner, ok := newNonEmpty[T, L](s)
	if !ok {
		panic("array: length check passed but buffer was rejected")
	}
	return FixedArray[T, L]{inner: inner}, nil
}

// FromSliceTrunc takes ownership of s, truncating it to length.Max[L]()
// elements first if needed. Dropped elements are zeroed so the array does not
// keep them reachable.
func FromSliceTrunc[L length.Length, T any](s []T) FixedArray[T, L] {
	a, err := TryFromSlice[L](s)
	if err == nil {
		return a
	}
	return FromSliceTrunc[L](truncateSlice[L](s))
}

func truncateSlice[L length.Length, T any](s []T) []T {
	limit := length.Max[L]()
	length.Truncated("array", length.TypeName[L](), len(s), limit)
	clear(s[limit:])
	return s[:limit:limit]
}

// Of copies elems into a new FixedArray. It is intended for compile-time
// literals and panics if more than length.Max[L]() elements are given; use
// TryFromSlice or FromSliceTrunc for input of unknown size.
func Of[L length.Length, T any](elems ...T) FixedArray[T, L] {
	a, err := TryFromSlice[L](slices.Clone(elems))
	if err != nil {
		panic("array.Of: " + err.Error())
	}
	return a
}

// Len returns the number of elements.
func (a FixedArray[T, L]) Len() L {
	if a.IsEmpty() {
		return length.Zero[L]()
	}
	return a.inner.size()
}

// IsEmpty reports whether the array owns no buffer.
func (a FixedArray[T, L]) IsEmpty() bool {
	return !a.inner.valid()
}

// Slice returns a view of the elements. Elements may be modified in place;
// the view has len == cap so append always copies.
func (a FixedArray[T, L]) Slice() []T {
	return a.inner.slice()
}

// At returns the element at i. It panics if i is out of range.
func (a FixedArray[T, L]) At(i L) T {
	return a.Slice()[i]
}

// Set overwrites the element at i. It panics if i is out of range.
func (a FixedArray[T, L]) Set(i L, v T) {
	a.Slice()[i] = v
}

// All yields index/element pairs in order.
func (a FixedArray[T, L]) All() iter.Seq2[L, T] {
	return func(yield func(L, T) bool) {
		for i, v := range a.Slice() {
			if !yield(L(i), v) {
				return
			}
		}
	}
}

// Values yields the elements in order.
func (a FixedArray[T, L]) Values() iter.Seq[T] {
	return slices.Values(a.Slice())
}

// IntoSlice hands the buffer back to the caller and leaves a empty.
// The returned slice is the exact buffer the array was built from, with
// len == cap.
func (a *FixedArray[T, L]) IntoSlice() []T {
	s := a.Slice()
	*a = FixedArray[T, L]{}
	return s
}

// Clone returns a deep copy backed by a fresh allocation.
func (a FixedArray[T, L]) Clone() FixedArray[T, L] {
	if a.IsEmpty() {
		return FixedArray[T, L]{}
	}
	return FixedArray[T, L]{inner: a.inner.clone()}
}

// CloneFrom makes a a copy of src, reusing a's buffer when the lengths match.
func (a *FixedArray[T, L]) CloneFrom(src FixedArray[T, L]) {
	if a.Len() == src.Len() {
		copy(a.Slice(), src.Slice())
		return
	}
	*a = src.Clone()
}

// ExtraSize reports the heap bytes owned by the array, excluding the header.
func (a FixedArray[T, L]) ExtraSize() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * length.ToInt(a.Len())
}

// Format implements fmt.Formatter by formatting the element slice.
func (a FixedArray[T, L]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), a.Slice())
}

// Equal reports whether a and b hold equal elements.
func Equal[T comparable, L length.Length](a, b FixedArray[T, L]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T any, L length.Length](a, b FixedArray[T, L], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Compare orders a and b lexicographically.
func Compare[T cmp.Ordered, L length.Length](a, b FixedArray[T, L]) int {
	return slices.Compare(a.Slice(), b.Slice())
}
