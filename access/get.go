package access

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/quickwritereader/smallfixed/types"
)

var (
	ErrMalformed    = errors.New("access: malformed buffer")
	ErrOutOfRange   = errors.New("access: field index out of range")
	ErrTypeMismatch = errors.New("access: unexpected field type")
)

// GetAccess reads fields from a buffer built by PutAccess or Pack. It never
// copies unless asked to.
type GetAccess struct {
	buf      []byte // full packed buffer: headers + payload
	argCount int    // number of headers (excluding TypeEnd)
	base     int    // absolute offset to payload start
}

func NewGetAccess(buf []byte) (*GetAccess, error) {
	if len(buf) < types.HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(buf))
	}
	base := types.DecodeOffset(binary.LittleEndian.Uint16(buf))
	if base < types.HeaderSize || base%types.HeaderSize != 0 || base > len(buf) {
		return nil, fmt.Errorf("%w: header block of %d bytes", ErrMalformed, base)
	}
	g := &GetAccess{
		buf:      buf,
		argCount: base/types.HeaderSize - 1,
		base:     base,
	}
	// the TypeEnd header must agree with the buffer length
	end := types.DecodeOffset(binary.LittleEndian.Uint16(buf[base-types.HeaderSize:]))
	if g.argCount == 0 {
		end = 0
	}
	if base+end != len(buf) {
		return nil, fmt.Errorf("%w: payload ends at %d, buffer has %d", ErrMalformed, base+end, len(buf))
	}
	return g, nil
}

// Count returns the number of fields.
func (g *GetAccess) Count() int {
	return g.argCount
}

// rangeAt returns absolute start and end offsets for field at pos
func (g *GetAccess) rangeAt(pos int) (tp types.Type, start, end int, err error) {
	if pos < 0 || pos >= g.argCount {
		return types.TypeEnd, 0, 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, pos, g.argCount)
	}

	h1 := binary.LittleEndian.Uint16(g.buf[pos*2:])
	h2 := binary.LittleEndian.Uint16(g.buf[(pos+1)*2:])

	start, tp = types.DecodeHeader(h1)
	end = types.DecodeOffset(h2) + g.base
	if pos > 0 {
		start += g.base
	}

	if start > end || end > len(g.buf) {
		return tp, 0, 0, fmt.Errorf("%w: field %d spans [%d, %d)", ErrMalformed, pos, start, end)
	}
	return tp, start, end, nil
}

func (g *GetAccess) field(pos int, want types.Type) ([]byte, error) {
	tp, start, end, err := g.rangeAt(pos)
	if err != nil {
		return nil, err
	}
	if tp != want {
		return nil, fmt.Errorf("%w: field %d is %s, want %s", ErrTypeMismatch, pos, tp, want)
	}
	return g.buf[start:end:end], nil
}

// TypeAt returns the tag of the field at pos.
func (g *GetAccess) TypeAt(pos int) (types.Type, error) {
	tp, _, _, err := g.rangeAt(pos)
	return tp, err
}

// GetUint reads an integer field of 1, 2 or 4 bytes.
func (g *GetAccess) GetUint(pos int) (uint32, error) {
	b, err := g.field(pos, types.TypeInteger)
	if err != nil {
		return 0, err
	}
	switch len(b) {
	case 1:
		return uint32(b[0]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return binary.LittleEndian.Uint32(b), nil
	default:
		return 0, fmt.Errorf("%w: integer field %d has %d bytes", ErrMalformed, pos, len(b))
	}
}

// GetBytes returns a copy of the payload at pos.
func (g *GetAccess) GetBytes(pos int) ([]byte, error) {
	b, err := g.field(pos, types.TypeBytes)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// GetBytesUnsafe returns the payload at pos without copying. The result
// aliases the packed buffer.
func (g *GetAccess) GetBytesUnsafe(pos int) ([]byte, error) {
	return g.field(pos, types.TypeBytes)
}

func (g *GetAccess) GetString(pos int) (string, error) {
	b, err := g.field(pos, types.TypeString)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetStringUnsafe returns the string at pos without copying. The packed
// buffer must not be modified while the string is in use.
func (g *GetAccess) GetStringUnsafe(pos int) (string, error) {
	b, err := g.field(pos, types.TypeString)
	if err != nil || len(b) == 0 {
		return "", err
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// GetTuple returns a reader over the nested tuple at pos. An empty tuple
// yields a reader with no fields.
func (g *GetAccess) GetTuple(pos int) (*GetAccess, error) {
	b, err := g.field(pos, types.TypeTuple)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return &GetAccess{}, nil
	}
	return NewGetAccess(b)
}

// GetStringTuple reads a tuple written by AddStringTuple.
func (g *GetAccess) GetStringTuple(pos int) ([]string, error) {
	nested, err := g.GetTuple(pos)
	if err != nil {
		return nil, err
	}
	out := make([]string, nested.Count())
	for i := range out {
		if out[i], err = nested.GetString(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}
