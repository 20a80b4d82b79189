// Package fixedstr implements FixedString, an immutable UTF-8 string whose
// length is stored as a narrow integer.
//
// A FixedString is two words wide on 64-bit platforms. Strings of up to
// InlineCapacity bytes are stored inside the value; longer ones own a heap
// buffer, and strings known to be immutable for the life of the program can
// be borrowed without copying via FromStatic.
package fixedstr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/quickwritereader/smallfixed/array"
	"github.com/quickwritereader/smallfixed/length"
)

// ErrInvalidUTF8 is returned by fallible constructors given bytes that are
// not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// FixedString is an immutable UTF-8 string of at most length.Max[L]() bytes.
// The zero value is the empty string.
type FixedString[L length.Length] struct {
	_ [0]func() // incomparable: use Equal

	repr repr[L]
}

// New returns the empty string.
func New[L length.Length]() FixedString[L] {
	return FixedString[L]{}
}

// FromStatic borrows s without copying it. s is truncated at a rune boundary
// to fit L. Input that is not valid UTF-8 is repaired into an owned copy, as
// FromStringTrunc does.
func FromStatic[L length.Length](s string) FixedString[L] {
	if !utf8.ValidString(s) {
		return FromStringTrunc[L](s)
	}
	t := truncateStr[L](s)
	return FixedString[L]{repr: staticRepr(newStatic[L](t))}
}

// FromString copies s into a new FixedString, inline when it fits.
//
// It fails with *length.InvalidStrLength when s is longer than
// length.Max[L]() bytes and with ErrInvalidUTF8 when s is not valid UTF-8.
func FromString[L length.Length](s string) (FixedString[L], error) {
	if !utf8.ValidString(s) {
		return FixedString[L]{}, fmt.Errorf("fixedstr: %w", ErrInvalidUTF8)
	}
	if in, ok := newInline(s); ok {
		return FixedString[L]{repr: inlineRepr[L](in)}, nil
	}
	if !length.Fits[L](len(s)) {
		return FixedString[L]{}, length.NewInvalidStrLength[L](s)
	}
	return fromOwned[L]([]byte(s)), nil
}

// FromStringTrunc is the infallible form of FromString. Invalid UTF-8 is
// replaced with U+FFFD, then the string is cut at the last rune boundary
// that fits L.
func FromStringTrunc[L length.Length](s string) FixedString[L] {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if in, ok := newInline(s); ok {
		return FixedString[L]{repr: inlineRepr[L](in)}
	}
	f, err := FromString[L](truncateStr[L](s))
	if err != nil {
		panic("fixedstr: truncated string rejected: " + err.Error())
	}
	return f
}

// FromBytes takes ownership of b without copying it unless it fits inline.
// b must not be modified afterwards.
//
// It fails with *length.InvalidLength[byte], which hands b back, when b is
// too long, and with ErrInvalidUTF8 when b is not valid UTF-8.
func FromBytes[L length.Length](b []byte) (FixedString[L], error) {
	if !utf8.Valid(b) {
		return FixedString[L]{}, fmt.Errorf("fixedstr: %w", ErrInvalidUTF8)
	}
	if in, ok := newInline(unsafe.String(unsafe.SliceData(b), len(b))); ok {
		return FixedString[L]{repr: inlineRepr[L](in)}, nil
	}
	if !length.Fits[L](len(b)) {
		return FixedString[L]{}, length.NewInvalidLength[byte, L](b)
	}
	return fromOwned[L](b), nil
}

// FromBytesTrunc is the infallible form of FromBytes.
func FromBytesTrunc[L length.Length](b []byte) FixedString[L] {
	if !utf8.Valid(b) {
		return FromStringTrunc[L](string(b))
	}
	t := truncateStr[L](unsafe.String(unsafe.SliceData(b), len(b)))
	f, err := FromBytes[L](b[:len(t):len(t)])
	if err != nil {
		panic("fixedstr: truncated bytes rejected: " + err.Error())
	}
	return f
}

// FromRune returns the UTF-8 encoding of r, always stored inline.
// Invalid runes become U+FFFD.
func FromRune[L length.Length](r rune) FixedString[L] {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return FixedString[L]{repr: inlineRepr[L](inlineFromRune(r, utf8.RuneLen(r)))}
}

// fromOwned adopts b, which must be valid UTF-8 that fits L.
func fromOwned[L length.Length](b []byte) FixedString[L] {
	if in, ok := newInline(unsafe.String(unsafe.SliceData(b), len(b))); ok {
		return FixedString[L]{repr: inlineRepr[L](in)}
	}
	a, err := array.TryFromSlice[L](b)
	if err != nil {
		panic("fixedstr: " + err.Error())
	}
	return FixedString[L]{repr: heapRepr(a)}
}

// truncateStr cuts s at the last rune boundary at or below length.Max[L]().
func truncateStr[L length.Length](s string) string {
	limit := length.Max[L]()
	if len(s) <= limit {
		return s
	}
	n := limit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	length.Truncated("string", length.TypeName[L](), len(s), n)
	return s[:n]
}

// Len returns the length in bytes.
func (f FixedString[L]) Len() L {
	return f.repr.len()
}

// IsEmpty reports whether the string has no bytes.
func (f FixedString[L]) IsEmpty() bool {
	return f.Len() == 0
}

// Kind reports how the string is stored.
func (f FixedString[L]) Kind() Kind {
	return f.repr.kind()
}

// IsInline reports whether the contents live in the value itself.
func (f FixedString[L]) IsInline() bool { return f.Kind() == Inline }

// IsHeap reports whether the contents are an owned heap allocation.
func (f FixedString[L]) IsHeap() bool { return f.Kind() == Heap }

// IsStatic reports whether the contents borrow a string given to FromStatic.
func (f FixedString[L]) IsStatic() bool { return f.Kind() == Static }

// String returns the contents. Heap and static strings are returned without
// copying; inline strings are copied out of the value.
func (f FixedString[L]) String() string {
	return f.repr.str()
}

// Bytes returns a copy of the contents.
func (f FixedString[L]) Bytes() []byte {
	if f.Kind() == Inline {
		return f.repr.inline().appendTo(make([]byte, 0, InlineCapacity))
	}
	return []byte(f.String())
}

// AppendTo appends the contents to dst.
func (f FixedString[L]) AppendTo(dst []byte) []byte {
	if f.Kind() == Inline {
		return f.repr.inline().appendTo(dst)
	}
	return append(dst, f.String()...)
}

// IntoString hands the contents back as a string and leaves f empty.
// A heap string gives up its buffer without copying.
func (f *FixedString[L]) IntoString() string {
	s := f.String()
	*f = FixedString[L]{}
	return s
}

// Clone copies f. Only heap strings allocate.
func (f FixedString[L]) Clone() FixedString[L] {
	if f.Kind() == Heap {
		return FixedString[L]{repr: heapRepr(f.repr.heap().Clone())}
	}
	return f
}

// CloneFrom replaces f with a copy of src.
//
// Unlike array.FixedArray.CloneFrom a heap buffer is never overwritten in
// place, since strings previously returned by String may share it.
func (f *FixedString[L]) CloneFrom(src FixedString[L]) {
	*f = src.Clone()
}

// Equal reports whether f and o hold the same bytes.
func (f FixedString[L]) Equal(o FixedString[L]) bool {
	if f.repr.ptr == nil && o.repr.ptr == nil {
		return f.repr.word == o.repr.word
	}
	if f.Len() != o.Len() {
		return false
	}
	return f.String() == o.String()
}

// EqualString reports whether f holds exactly the bytes of s.
func (f FixedString[L]) EqualString(s string) bool {
	return length.ToInt(f.Len()) == len(s) && f.String() == s
}

// Compare orders f and o bytewise, like strings.Compare.
func (f FixedString[L]) Compare(o FixedString[L]) int {
	return strings.Compare(f.String(), o.String())
}

// ExtraSize reports the heap bytes owned by f. Inline and static strings
// own none.
func (f FixedString[L]) ExtraSize() int {
	if f.Kind() == Heap {
		return length.ToInt(f.Len())
	}
	return 0
}
