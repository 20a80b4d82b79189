package packable

import (
	"github.com/quickwritereader/smallfixed/access"
	"github.com/quickwritereader/smallfixed/types"
	"github.com/quickwritereader/smallfixed/utils"
)

var bPool = utils.NewBufferPool()

// PackContainer lays out its arguments as one header block followed by their
// payloads, the same layout PutAccess produces.
type PackContainer struct {
	args []access.Packable
}

func NewPackContainer(args ...access.Packable) PackContainer {
	return PackContainer{args: args}
}

// PackTuple nests the arguments as a single tuple field.
func PackTuple(args ...access.Packable) PackContainer {
	return NewPackContainer(args...)
}

func (p PackContainer) HeaderType() types.Type { return types.TypeTuple }

func (p PackContainer) payloadSize() int {
	n := 0
	for _, arg := range p.args {
		n += arg.ValueSize()
	}
	return n
}

// ValueSize returns the size of the packed container. An empty container
// occupies no bytes when nested.
func (p PackContainer) ValueSize() int {
	if len(p.args) == 0 {
		return 0
	}
	return p.payloadSize() + len(p.args)*access.HeaderTagSize + access.HeaderTagSize
}

// Write packs the container into buf at pos.
func (p PackContainer) Write(buf []byte, pos int) int {
	if len(p.args) < 1 {
		return pos
	}

	headerSize := len(p.args)*access.HeaderTagSize + access.HeaderTagSize

	// posH writes headers, pos writes data
	posH := pos
	pos += headerSize
	deltaStart := pos

	// first header is encoded with the absolute payload base
	posH = access.WriteTypeHeader(buf, posH, headerSize, p.args[0].HeaderType())
	pos = p.args[0].Write(buf, pos)

	for _, arg := range p.args[1:] {
		posH = access.WriteTypeHeader(buf, posH, pos-deltaStart, arg.HeaderType())
		pos = arg.Write(buf, pos)
	}
	access.WriteTypeHeader(buf, posH, pos-deltaStart, types.TypeEnd)
	return pos
}

func (pack PackContainer) PackInto(p *access.PutAccess) {
	size := pack.ValueSize()
	buffer := bPool.Acquire(size)
	pos := pack.Write(buffer, 0)
	p.AppendTagAndValue(types.TypeTuple, buffer[:pos])
	bPool.Release(buffer)
}

// Pack lays out args in a fresh buffer. Payloads past types.MaxOffset are not
// addressable; use TryPack when sizes are not known to be small.
func Pack(args ...access.Packable) []byte {
	if len(args) == 0 {
		return binaryEnd(types.HeaderSize)
	}
	pp := NewPackContainer(args...)
	buffer := make([]byte, pp.ValueSize())
	pp.Write(buffer, 0)
	return buffer
}

// TryPack is Pack with an offset check.
func TryPack(args ...access.Packable) ([]byte, error) {
	pp := NewPackContainer(args...)
	if err := types.CheckOffset(pp.payloadSize()); err != nil {
		return nil, err
	}
	if err := types.CheckOffset(len(args)*access.HeaderTagSize + access.HeaderTagSize); err != nil {
		return nil, err
	}
	return Pack(args...), nil
}

func binaryEnd(base int) []byte {
	buf := make([]byte, types.HeaderSize)
	access.WriteTypeHeader(buf, 0, base, types.TypeEnd)
	return buf
}
