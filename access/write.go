package access

import (
	"encoding/binary"

	"github.com/quickwritereader/smallfixed/types"
)

const HeaderTagSize = types.HeaderSize

// WriteTypeHeader writes a header to the buffer at pos and returns the new position.
func WriteTypeHeader(buffer []byte, pos int, encodedPos int, t types.Type) (newPos int) {
	binary.LittleEndian.PutUint16(buffer[pos:], types.EncodeHeader(encodedPos, t))
	return pos + HeaderTagSize
}

func WriteUint8(buffer []byte, pos int, v uint8) int {
	buffer[pos] = v
	return pos + 1
}

func WriteUint16(buffer []byte, pos int, v uint16) int {
	binary.LittleEndian.PutUint16(buffer[pos:], v)
	return pos + 2
}

func WriteUint32(buffer []byte, pos int, v uint32) int {
	binary.LittleEndian.PutUint32(buffer[pos:], v)
	return pos + 4
}

// WriteString writes a string to the buffer.
func WriteString(buffer []byte, pos int, s string) int {
	return pos + copy(buffer[pos:], s)
}

// WriteBytes writes a byte slice to the buffer.
func WriteBytes(buffer []byte, pos int, b []byte) int {
	return pos + copy(buffer[pos:], b)
}
