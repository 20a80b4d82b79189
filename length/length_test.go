package length

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smallLen uint8

func TestMax(t *testing.T) {
	assert.Equal(t, math.MaxUint8, Max[uint8]())
	assert.Equal(t, math.MaxUint16, Max[uint16]())
	assert.Equal(t, 255, Max[smallLen]())

	want := uint64(math.MaxUint32)
	if want > uint64(math.MaxInt) {
		want = uint64(math.MaxInt)
	}
	assert.Equal(t, want, uint64(Max[uint32]()))
}

func TestZero(t *testing.T) {
	assert.Equal(t, uint8(0), Zero[uint8]())
	assert.Equal(t, uint32(0), Zero[uint32]())
}

func TestFrom(t *testing.T) {
	v, ok := From[uint8](255)
	require.True(t, ok)
	assert.Equal(t, uint8(255), v)

	_, ok = From[uint8](256)
	assert.False(t, ok)

	_, ok = From[uint16](-1)
	assert.False(t, ok)

	v16, ok := From[uint16](uint64(65535))
	require.True(t, ok)
	assert.Equal(t, uint16(65535), v16)

	_, ok = From[uint16](int64(65536))
	assert.False(t, ok)

	assert.True(t, Fits[uint8](0))
	assert.False(t, Fits[uint8](-1))
	assert.False(t, Fits[uint8](300))
}

func TestToIntRoundtrip(t *testing.T) {
	for n := 0; n <= Max[uint8](); n++ {
		l, ok := From[uint8](n)
		require.True(t, ok)
		assert.Equal(t, n, ToInt(l))
	}
}

func TestNonZero(t *testing.T) {
	_, ok := NewNonZero[uint16](0)
	assert.False(t, ok)

	nz, ok := NewNonZero[uint16](7)
	require.True(t, ok)
	assert.Equal(t, uint16(7), nz.Get())

	var unset NonZero[uint16]
	assert.Equal(t, uint16(0), unset.Get())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "uint8", TypeName[uint8]())
	assert.Equal(t, "uint32", TypeName[uint32]())
	assert.Equal(t, "length.smallLen", TypeName[smallLen]())
}

func TestInvalidLength(t *testing.T) {
	in := make([]int, 300)
	err := NewInvalidLength[int, uint8](in)

	assert.EqualError(t, err, "cannot fit 300 into uint8")
	assert.True(t, errors.Is(err, ErrInvalidLength))
	assert.Equal(t, 300, err.Len())
	assert.Len(t, err.Into(), 300)

	var target *InvalidLength[int]
	wrapped := error(err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "uint8", target.TypeName)
}

func TestInvalidStrLength(t *testing.T) {
	err := NewInvalidStrLength[uint8]("héllo")
	assert.EqualError(t, err, "cannot fit 6 into uint8")
	assert.True(t, errors.Is(err, ErrInvalidLength))
	assert.Equal(t, "héllo", err.Into())
}

func TestTruncatedDiagnostic(t *testing.T) {
	// disabled sink must be a no-op
	SetLogger(nil)
	Truncated("array", "uint8", 300, 255)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Truncated("string", "uint16", 70000, 65535)

	out := buf.String()
	assert.Contains(t, out, "kind=string")
	assert.Contains(t, out, "type=uint16")
	assert.Contains(t, out, "from=70000")
	assert.Contains(t, out, "to=65535")
}
