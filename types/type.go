package types

import "errors"

// Type is a 3-bit tag encoded into the low bits of a uint16 header. The
// remaining 13 bits hold the field offset.
type Type uint16

const (
	TypeEnd     Type = 0
	TypeInteger Type = 1
	TypeTuple   Type = 4
	TypeString  Type = 6 // string and raw byte payloads share a tag
	TypeBytes   Type = 6
)

const (
	HeaderSize = 2
	offsetBits = 3
	typeMask   = 0x07
	// MaxOffset is the largest offset a header can address.
	MaxOffset = 1<<(16-offsetBits) - 1
)

var ErrOffsetOverflow = errors.New("types: offset does not fit in a header")

// String returns the human-readable name of the type
func (t Type) String() string {
	switch t {
	case TypeEnd:
		return "end"
	case TypeInteger:
		return "integer"
	case TypeTuple:
		return "tuple"
	case TypeString:
		return "string"
	default:
		return "invalid"
	}
}

// EncodeHeader packs an offset and type tag. Offsets above MaxOffset are
// silently cut; use CheckOffset before encoding untrusted sizes.
func EncodeHeader(offset int, typeID Type) uint16 {
	return uint16(offset<<offsetBits) | (uint16(typeID) & typeMask)
}

func EncodeEnd(offset int) uint16 {
	return uint16(offset << offsetBits)
}

func CheckOffset(offset int) error {
	if offset < 0 || offset > MaxOffset {
		return ErrOffsetOverflow
	}
	return nil
}

// DecodeHeader splits a header entry into offset and type tag
func DecodeHeader(header uint16) (offset int, typeID Type) {
	return int(header >> offsetBits), Type(header & typeMask)
}

func DecodeOffset(header uint16) int {
	return int(header >> offsetBits)
}

func DecodeType(header uint16) Type {
	return Type(header & typeMask)
}
