package array

import (
	"github.com/cespare/xxhash/v2"
	"github.com/quickwritereader/smallfixed/length"
)

// HashBytes returns the XXH64 digest of a byte array's contents.
func HashBytes[L length.Length](a FixedArray[byte, L]) uint64 {
	return xxhash.Sum64(a.Slice())
}
