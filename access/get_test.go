package access

import (
	"testing"
	"unsafe"

	"github.com/quickwritereader/smallfixed/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccess_ExplicitByteMatch(t *testing.T) {
	buf := []byte{
		0x41, 0x00, // header[0]: absolute offset=8, TypeInteger
		0x16, 0x00, // header[1]: delta=2, TypeString ("go")
		0x26, 0x00, // header[2]: delta=4, TypeString (bytes)
		0x30, 0x00, // header[3]: delta=6, TypeEnd
		0x2A, 0x00, // uint16(42)
		0x67, 0x6F, // "go"
		0xAA, 0xBB, // bytes
	}

	get, err := NewGetAccess(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, get.Count())

	v0, err := get.GetUint(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v0)

	v1, err := get.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "go", v1)

	v2, err := get.GetBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, v2)
	v2[0] = 0
	assert.Equal(t, byte(0xAA), buf[12], "GetBytes must copy")

	tp, err := get.TypeAt(0)
	require.NoError(t, err)
	assert.Equal(t, types.TypeInteger, tp)
}

func TestGetAccess_Unsafe(t *testing.T) {
	put := NewPutAccess()
	put.AddString("zero-copy")
	buf := put.Pack()

	get, err := NewGetAccess(buf)
	require.NoError(t, err)

	s, err := get.GetStringUnsafe(0)
	require.NoError(t, err)
	assert.Equal(t, "zero-copy", s)
	assert.Same(t, &buf[4], unsafe.StringData(s))

	b, err := get.GetBytesUnsafe(0)
	require.NoError(t, err)
	assert.Equal(t, len(b), cap(b))
}

func TestGetAccess_StringTupleRoundTrip(t *testing.T) {
	put := NewPutAccess()
	put.AddStringTuple("role", "admin", "")
	put.AddStringTuple()
	put.AddUint8(9)

	get, err := NewGetAccess(put.Pack())
	require.NoError(t, err)

	got, err := get.GetStringTuple(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"role", "admin", ""}, got)

	empty, err := get.GetStringTuple(1)
	require.NoError(t, err)
	assert.Empty(t, empty)

	v, err := get.GetUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), v)
}

func TestGetAccess_Errors(t *testing.T) {
	_, err := NewGetAccess([]byte{0x10})
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = NewGetAccess([]byte{0x18, 0x00}) // base=3
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = NewGetAccess([]byte{0x40, 0x00}) // base beyond buffer
	assert.ErrorIs(t, err, ErrMalformed)

	put := NewPutAccess()
	put.AddString("go")
	buf := put.Pack()
	_, err = NewGetAccess(append(buf, 0x00))
	assert.ErrorIs(t, err, ErrMalformed, "trailing bytes")

	get, err := NewGetAccess(buf)
	require.NoError(t, err)

	_, err = get.GetString(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = get.GetString(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = get.GetUint(0)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = get.GetTuple(0)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	put = NewPutAccess()
	put.AppendTagAndValue(types.TypeInteger, []byte{1, 2, 3})
	get, err = NewGetAccess(put.Pack())
	require.NoError(t, err)
	_, err = get.GetUint(0)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGetAccess_Uints(t *testing.T) {
	put := NewPutAccess()
	put.AddUint8(0xFF)
	put.AddUint16(0xFFFF)
	put.AddUint32(0xFFFFFFFF)

	get, err := NewGetAccess(put.Pack())
	require.NoError(t, err)
	for i, want := range []uint32{0xFF, 0xFFFF, 0xFFFFFFFF} {
		got, err := get.GetUint(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
