package access

import (
	"encoding/binary"
	"errors"
	"sync"
	"unsafe"

	"github.com/quickwritereader/smallfixed/types"
)

var ErrInsufficientBuffer = errors.New("access: insufficient buffer")

var putAccessPool = sync.Pool{
	New: func() any {
		return &PutAccess{
			buf:     make([]byte, 0, 1024),
			offsets: make([]byte, 0, 64),
		}
	},
}

// GetPutAccess returns a reset PutAccess from the pool.
func GetPutAccess() *PutAccess {
	p := putAccessPool.Get().(*PutAccess)
	p.buf = p.buf[:0]
	p.offsets = p.offsets[:0]
	p.position = 0
	p.err = nil
	return p
}

func ReleasePutAccess(pa *PutAccess) {
	putAccessPool.Put(pa)
}

// PutAccess builds a packed buffer: a block of 2-byte headers followed by
// the payload. Header 0 carries the absolute payload base, the rest carry
// offsets relative to it, and a trailing TypeEnd header marks the payload end.
type PutAccess struct {
	buf      []byte // payload buffer
	offsets  []byte // header entries: offset + type tag
	position int    // current payload write position
	err      error
}

func NewPutAccess() *PutAccess {
	return &PutAccess{
		buf:     make([]byte, 0, 256),
		offsets: make([]byte, 0, 64),
	}
}

// Err reports the first offset overflow seen while adding fields.
func (p *PutAccess) Err() error {
	return p.err
}

func (p *PutAccess) header(tag types.Type) {
	if p.err == nil {
		p.err = types.CheckOffset(p.position)
	}
	p.offsets = binary.LittleEndian.AppendUint16(p.offsets, types.EncodeHeader(p.position, tag))
}

func (p *PutAccess) advance() {
	p.position = len(p.buf)
}

// AppendTagAndValue adds a field whose payload is already encoded.
func (p *PutAccess) AppendTagAndValue(tag types.Type, val []byte) {
	p.header(tag)
	p.buf = append(p.buf, val...)
	p.advance()
}

// AddUint8 packs a uint8 value.
func (p *PutAccess) AddUint8(v uint8) {
	p.header(types.TypeInteger)
	p.buf = append(p.buf, v)
	p.advance()
}

// AddUint16 packs a uint16 value.
func (p *PutAccess) AddUint16(v uint16) {
	p.header(types.TypeInteger)
	p.buf = binary.LittleEndian.AppendUint16(p.buf, v)
	p.advance()
}

// AddUint32 packs a uint32 value.
func (p *PutAccess) AddUint32(v uint32) {
	p.header(types.TypeInteger)
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
	p.advance()
}

// AddBytes packs a byte slice without length prefix
func (p *PutAccess) AddBytes(b []byte) {
	p.header(types.TypeBytes)
	p.buf = append(p.buf, b...)
	p.advance()
}

// AddString packs a string using unsafe zero-copy conversion
func (p *PutAccess) AddString(s string) {
	p.AddBytes(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// AddStringTuple packs the strings as one nested tuple field.
func (p *PutAccess) AddStringTuple(arr ...string) {
	nested := p.BeginTuple()
	for _, s := range arr {
		nested.AddString(s)
	}
	p.EndNested(nested)
}

func (p *PutAccess) AddPackable(v Packable) {
	v.PackInto(p)
}

// BeginTuple adds a tuple header and returns the PutAccess its fields are
// written to. Close it with EndNested.
func (p *PutAccess) BeginTuple() *PutAccess {
	p.header(types.TypeTuple)
	return GetPutAccess()
}

func (p *PutAccess) EndNested(nested *PutAccess) {
	if len(nested.offsets) > 0 {
		if nested.err != nil && p.err == nil {
			p.err = nested.err
		}
		p.buf = nested.PackAppend(p.buf)
	}
	ReleasePutAccess(nested)
	p.advance()
}

// finish appends the TypeEnd header and rewrites header 0 with the absolute
// payload base.
func (p *PutAccess) finish() {
	p.header(types.TypeEnd)
	headerSize := len(p.offsets)
	if p.err == nil {
		p.err = types.CheckOffset(headerSize)
	}
	hdr := types.EncodeHeader(headerSize, types.DecodeType(binary.LittleEndian.Uint16(p.offsets)))
	binary.LittleEndian.PutUint16(p.offsets, hdr)
}

// Pack finalizes the buffer: header + payload + TypeEnd
func (p *PutAccess) Pack() []byte {
	p.finish()
	final := make([]byte, len(p.offsets)+len(p.buf))
	n := copy(final, p.offsets)
	copy(final[n:], p.buf)
	return final
}

func (p *PutAccess) PackAppend(buf []byte) []byte {
	p.finish()
	buf = append(buf, p.offsets...)
	return append(buf, p.buf...)
}

// PackSize reports the size Pack will produce. Call it before Pack.
func (p *PutAccess) PackSize() int {
	return len(p.offsets) + len(p.buf) + types.HeaderSize
}

func (p *PutAccess) PackBuff(buffer []byte) (int, error) {
	if len(buffer) < p.PackSize() {
		return 0, ErrInsufficientBuffer
	}
	p.finish()
	n := copy(buffer, p.offsets)
	n += copy(buffer[n:], p.buf)
	return n, nil
}
