package fixedstr

import "github.com/cespare/xxhash/v2"

// Hash returns the XXH64 digest of the contents. Equal strings hash equally
// whatever their Kind.
func (f FixedString[L]) Hash() uint64 {
	if f.Kind() == Inline {
		var tmp [InlineCapacity]byte
		return xxhash.Sum64(f.AppendTo(tmp[:0]))
	}
	return xxhash.Sum64String(f.String())
}

// HashInto feeds the contents to d, for keys built from several fields.
func (f FixedString[L]) HashInto(d *xxhash.Digest) {
	if f.Kind() == Inline {
		var tmp [InlineCapacity]byte
		_, _ = d.Write(f.AppendTo(tmp[:0]))
		return
	}
	_, _ = d.WriteString(f.String())
}
