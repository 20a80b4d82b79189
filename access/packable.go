package access

import "github.com/quickwritereader/smallfixed/types"

// Packable is a value that knows its own wire form. Write and ValueSize
// serve the one-shot packer, PackInto the incremental PutAccess path.
//
// Implement it on small value wrappers rather than on slice types directly:
// boxing a slice header into the interface forces a heap allocation.
type Packable interface {
	HeaderType() types.Type
	ValueSize() int
	Write(buf []byte, pos int) int
	PackInto(p *PutAccess)
}
