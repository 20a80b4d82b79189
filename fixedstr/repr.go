package fixedstr

import (
	"encoding/binary"
	"unsafe"

	"github.com/quickwritereader/smallfixed/array"
	"github.com/quickwritereader/smallfixed/length"
)

// Kind is the storage chosen for a FixedString.
type Kind uint8

const (
	// Inline strings live inside the value itself.
	Inline Kind = iota
	// Heap strings own a buffer allocated for them.
	Heap
	// Static strings borrow the bytes of an immutable Go string.
	Static
)

func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Heap:
		return "heap"
	case Static:
		return "static"
	default:
		return "invalid"
	}
}

// kindSlot is the byte of word holding the Kind of a pointer-backed repr.
const kindSlot = InlineCapacity - 1

// repr packs the three storage kinds into a pointer and one 8-byte word.
//
// ptr == nil: word is an inlineString.
// ptr != nil: word[0:4] is the little-endian length, word[kindSlot] the Kind.
//
// The GC must always see a real pointer in ptr, so inline bytes never
// overlap it.
type repr[L length.Length] struct {
	ptr  *byte
	word [InlineCapacity]byte
}

func inlineRepr[L length.Length](in inlineString) repr[L] {
	return repr[L]{word: in.buf}
}

func pointerRepr[L length.Length](ptr *byte, n L, k Kind) repr[L] {
	r := repr[L]{ptr: ptr}
	binary.LittleEndian.PutUint32(r.word[:4], uint32(n))
	r.word[kindSlot] = byte(k)
	return r
}

func heapRepr[L length.Length](a array.FixedArray[byte, L]) repr[L] {
	if a.IsEmpty() {
		return repr[L]{}
	}
	return pointerRepr(unsafe.SliceData(a.Slice()), a.Len(), Heap)
}

func staticRepr[L length.Length](s staticStr[L]) repr[L] {
	if s.len == 0 {
		return repr[L]{}
	}
	return pointerRepr(s.ptr, s.len, Static)
}

func (r repr[L]) kind() Kind {
	if r.ptr == nil {
		return Inline
	}
	return Kind(r.word[kindSlot])
}

func (r repr[L]) rawLen() L {
	return L(binary.LittleEndian.Uint32(r.word[:4]))
}

func (r repr[L]) inline() inlineString {
	return inlineString{buf: r.word}
}

func (r repr[L]) static() staticStr[L] {
	return staticStr[L]{ptr: r.ptr, len: r.rawLen()}
}

// heap rebuilds the owning array around the buffer without copying it.
func (r repr[L]) heap() array.FixedArray[byte, L] {
	a, err := array.TryFromSlice[L](unsafe.Slice(r.ptr, length.ToInt(r.rawLen())))
	if err != nil {
		panic("fixedstr: heap length exceeds its own length type")
	}
	return a
}

func (r repr[L]) len() L {
	if r.ptr == nil {
		return L(r.inline().len())
	}
	return r.rawLen()
}

func (r repr[L]) str() string {
	switch r.kind() {
	case Inline:
		return r.inline().str()
	case Static:
		return r.static().str()
	default:
		return unsafe.String(r.ptr, length.ToInt(r.rawLen()))
	}
}
