package array

import (
	"unsafe"

	"github.com/quickwritereader/smallfixed/length"
)

// nonEmpty owns a buffer of exactly len elements, len >= 1.
//
// The zero nonEmpty (nil ptr) is never a valid owner; FixedArray uses it to
// mean "empty" so that no separate discriminant is stored.
type nonEmpty[T any, L length.Length] struct {
	ptr *T
	len length.NonZero[L]
}

func newNonEmpty[T any, L length.Length](s []T) (nonEmpty[T, L], bool) {
	l, ok := length.From[L](len(s))
	if !ok {
		return nonEmpty[T, L]{}, false
	}
	nz, ok := length.NewNonZero(l)
	if !ok {
		return nonEmpty[T, L]{}, false
	}
	return nonEmpty[T, L]{ptr: unsafe.SliceData(s), len: nz}, true
}

func (n nonEmpty[T, L]) valid() bool {
	return n.ptr != nil
}

func (n nonEmpty[T, L]) size() L {
	return n.len.Get()
}

// slice returns the owned buffer with len == cap.
func (n nonEmpty[T, L]) slice() []T {
	if n.ptr == nil {
		return nil
	}
	return unsafe.Slice(n.ptr, length.ToInt(n.len.Get()))
}

func (n nonEmpty[T, L]) clone() nonEmpty[T, L] {
	s := make([]T, length.ToInt(n.len.Get()))
	copy(s, n.slice())
	return nonEmpty[T, L]{ptr: unsafe.SliceData(s), len: n.len}
}
