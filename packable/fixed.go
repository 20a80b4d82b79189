package packable

import (
	"github.com/quickwritereader/smallfixed/access"
	"github.com/quickwritereader/smallfixed/array"
	"github.com/quickwritereader/smallfixed/fixedstr"
	"github.com/quickwritereader/smallfixed/length"
	"github.com/quickwritereader/smallfixed/types"
)

// PackString implements the Packable interface for string.
type PackString string

func (p PackString) HeaderType() types.Type { return types.TypeString }
func (p PackString) ValueSize() int         { return len(p) }
func (p PackString) Write(buf []byte, pos int) int {
	return access.WriteString(buf, pos, string(p))
}
func (v PackString) PackInto(p *access.PutAccess) {
	p.AddString(string(v))
}

// PackFixedString packs a FixedString as a string field. Heap and static
// content is written without an intermediate copy.
type PackFixedString[L length.Length] fixedstr.FixedString[L]

func (p PackFixedString[L]) str() fixedstr.FixedString[L] {
	return fixedstr.FixedString[L](p)
}

func (p PackFixedString[L]) HeaderType() types.Type { return types.TypeString }
func (p PackFixedString[L]) ValueSize() int         { return length.ToInt(p.str().Len()) }
func (p PackFixedString[L]) Write(buf []byte, pos int) int {
	return pos + len(p.str().AppendTo(buf[pos:pos]))
}
func (v PackFixedString[L]) PackInto(p *access.PutAccess) {
	f := v.str()
	if f.IsInline() {
		var tmp [fixedstr.InlineCapacity]byte
		p.AddBytes(f.AppendTo(tmp[:0]))
		return
	}
	p.AddString(f.String())
}

// PackFixedBytes packs a byte FixedArray as a raw bytes field.
type PackFixedBytes[L length.Length] array.FixedArray[byte, L]

func (p PackFixedBytes[L]) bytes() []byte {
	return array.FixedArray[byte, L](p).Slice()
}

func (p PackFixedBytes[L]) HeaderType() types.Type { return types.TypeBytes }
func (p PackFixedBytes[L]) ValueSize() int         { return len(p.bytes()) }
func (p PackFixedBytes[L]) Write(buf []byte, pos int) int {
	return access.WriteBytes(buf, pos, p.bytes())
}
func (v PackFixedBytes[L]) PackInto(p *access.PutAccess) {
	p.AddBytes(v.bytes())
}

// PackStringArray packs a FixedArray of FixedStrings as a tuple of strings.
func PackStringArray[L, N length.Length](a array.FixedArray[fixedstr.FixedString[L], N]) PackContainer {
	args := make([]access.Packable, 0, length.ToInt(a.Len()))
	for v := range a.Values() {
		args = append(args, PackFixedString[L](v))
	}
	return PackTuple(args...)
}

// UnpackFixedString reads the string field at pos, rejecting content that
// does not fit L. The field is copied once and the copy is adopted, so the
// result never aliases the packed buffer.
func UnpackFixedString[L length.Length](g *access.GetAccess, pos int) (fixedstr.FixedString[L], error) {
	b, err := g.GetBytes(pos)
	if err != nil {
		return fixedstr.New[L](), err
	}
	return fixedstr.FromBytes[L](b)
}

// UnpackFixedStringTrunc is UnpackFixedString with truncation instead of
// rejection.
func UnpackFixedStringTrunc[L length.Length](g *access.GetAccess, pos int) (fixedstr.FixedString[L], error) {
	b, err := g.GetBytes(pos)
	if err != nil {
		return fixedstr.New[L](), err
	}
	return fixedstr.FromBytesTrunc[L](b), nil
}

func UnpackFixedBytes[L length.Length](g *access.GetAccess, pos int) (array.FixedArray[byte, L], error) {
	b, err := g.GetBytes(pos)
	if err != nil {
		return array.New[byte, L](), err
	}
	return array.TryFromSlice[L](b)
}

func UnpackFixedBytesTrunc[L length.Length](g *access.GetAccess, pos int) (array.FixedArray[byte, L], error) {
	b, err := g.GetBytes(pos)
	if err != nil {
		return array.New[byte, L](), err
	}
	return array.FromSliceTrunc[L](b), nil
}

// UnpackStringArray reads a tuple written by PackStringArray.
func UnpackStringArray[L, N length.Length](g *access.GetAccess, pos int) (array.FixedArray[fixedstr.FixedString[L], N], error) {
	var empty array.FixedArray[fixedstr.FixedString[L], N]
	nested, err := g.GetTuple(pos)
	if err != nil {
		return empty, err
	}
	out := make([]fixedstr.FixedString[L], nested.Count())
	for i := range out {
		if out[i], err = UnpackFixedString[L](nested, i); err != nil {
			return empty, err
		}
	}
	return array.TryFromSlice[N](out)
}
