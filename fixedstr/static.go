package fixedstr

import (
	"unsafe"

	"github.com/quickwritereader/smallfixed/length"
)

// staticStr borrows the bytes of a Go string. It never allocates or copies.
type staticStr[L length.Length] struct {
	ptr *byte
	len L
}

// newStatic panics if s does not fit L; callers truncate first.
func newStatic[L length.Length](s string) staticStr[L] {
	l, ok := length.From[L](len(s))
	if !ok {
		panic("fixedstr: static string does not fit " + length.TypeName[L]())
	}
	return staticStr[L]{ptr: unsafe.StringData(s), len: l}
}

func (s staticStr[L]) str() string {
	return unsafe.String(s.ptr, length.ToInt(s.len))
}
