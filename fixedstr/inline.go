package fixedstr

import (
	"encoding/binary"
	"math/bits"
	"unicode/utf8"
)

// InlineCapacity is the longest string, in bytes, stored without a heap
// allocation.
const InlineCapacity = 8

// terminator marks the end of inline content. 0xFF never occurs in UTF-8.
const terminator = 0xFF

// inlineString holds up to InlineCapacity bytes of UTF-8.
//
// Content shorter than the buffer is followed by terminator bytes; a full
// buffer carries none. Every byte is stored complemented, so the terminator
// is stored as 0x00 and the zero inlineString is the empty string.
type inlineString struct {
	buf [InlineCapacity]byte
}

func packInline(n int, write func([]byte)) inlineString {
	if n > InlineCapacity {
		panic("fixedstr: inline content exceeds capacity")
	}
	var in inlineString
	write(in.buf[:n])
	for i := range in.buf[:n] {
		in.buf[i] = ^in.buf[i]
	}
	return in
}

func newInline(s string) (inlineString, bool) {
	if len(s) > InlineCapacity {
		return inlineString{}, false
	}
	return packInline(len(s), func(b []byte) { copy(b, s) }), true
}

func inlineFromRune(r rune, size int) inlineString {
	return packInline(size, func(b []byte) { utf8.EncodeRune(b, r) })
}

// len finds the first stored terminator with a word-at-a-time zero byte
// scan. Bits above the lowest zero byte may be false positives, the lowest
// one never is.
func (in inlineString) len() int {
	const (
		lo = 0x0101010101010101
		hi = 0x8080808080808080
	)
	w := binary.LittleEndian.Uint64(in.buf[:])
	m := (w - lo) &^ w & hi
	if m == 0 {
		return InlineCapacity
	}
	return bits.TrailingZeros64(m) / 8
}

func (in inlineString) appendTo(dst []byte) []byte {
	for _, c := range in.buf[:in.len()] {
		dst = append(dst, ^c)
	}
	return dst
}

func (in inlineString) str() string {
	var raw [InlineCapacity]byte
	return string(in.appendTo(raw[:0]))
}
