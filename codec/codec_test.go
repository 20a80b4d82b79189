package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/quickwritereader/smallfixed/access"
	"github.com/quickwritereader/smallfixed/array"
	"github.com/quickwritereader/smallfixed/fixedstr"
	"github.com/quickwritereader/smallfixed/length"
)

var (
	allFormats   = []Format{JSON, MsgPack, CBOR, YAML, Packed}
	plainFormats = []Format{JSON, MsgPack, CBOR, YAML}
)

// plainString encodes s the way a plain Go string is encoded in f.
func plainString(t *testing.T, f Format, s string) []byte {
	t.Helper()
	var (
		out []byte
		err error
	)
	switch f {
	case JSON:
		out, err = json.Marshal(s)
	case MsgPack:
		out, err = msgpack.Marshal(s)
	case CBOR:
		out, err = cbor.Marshal(s)
	case YAML:
		out, err = yaml.Marshal(s)
	case Packed:
		p := access.NewPutAccess()
		p.AddString(s)
		out = p.Pack()
	}
	require.NoError(t, err)
	return out
}

func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	length.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { length.SetLogger(nil) })
	return &buf
}

func TestEncodeString_MatchesPlainString(t *testing.T) {
	inputs := []string{"", "go", "🦀", "heap allocated content"}
	for _, f := range allFormats {
		for _, s := range inputs {
			v := fixedstr.FromStringTrunc[uint8](s)
			got, err := EncodeString(f, v)
			require.NoError(t, err, "%s %q", f, s)
			assert.Equal(t, plainString(t, f, s), got, "%s %q", f, s)

			back, err := DecodeString[uint8](f, got, Reject)
			require.NoError(t, err, "%s %q", f, s)
			assert.True(t, back.Equal(v), "%s %q", f, s)
		}
	}
}

func TestDecodeString_Policies(t *testing.T) {
	long := strings.Repeat("x", 300)
	for _, f := range allFormats {
		data := plainString(t, f, long)

		_, err := DecodeString[uint8](f, data, Reject)
		require.Error(t, err, f.String())
		assert.True(t, errors.Is(err, length.ErrInvalidLength), f.String())
		var lenErr *length.InvalidStrLength
		if f != Packed {
			require.ErrorAs(t, err, &lenErr, f.String())
			assert.Equal(t, long, lenErr.Into())
		}

		diag := captureDiagnostics(t)
		v, err := DecodeString[uint8](f, data, Truncate)
		require.NoError(t, err, f.String())
		assert.Equal(t, uint8(255), v.Len())
		assert.Equal(t, long[:255], v.String())
		assert.Contains(t, diag.String(), "from=300")
		assert.Contains(t, diag.String(), "to=255")

		_, err = DecodeString[uint16](f, data, Reject)
		assert.NoError(t, err, f.String())
	}
}

func TestDecodeString_TruncatesAtRuneBoundary(t *testing.T) {
	s := strings.Repeat("_", 254) + "🦀"
	for _, f := range allFormats {
		v, err := DecodeString[uint8](f, plainString(t, f, s), Truncate)
		require.NoError(t, err)
		assert.Equal(t, uint8(254), v.Len(), f.String())
	}
}

func TestDecodeString_Errors(t *testing.T) {
	_, err := DecodeString[uint8](JSON, []byte(`"ok"`), Policy(9))
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	_, err = DecodeString[uint8](Format(9), []byte(`"ok"`), Reject)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = EncodeString(Format(9), fixedstr.New[uint8]())
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = DecodeString[uint8](JSON, []byte(`[1]`), Reject)
	assert.Error(t, err)

	_, err = DecodeString[uint8](Packed, []byte{0x01}, Reject)
	assert.ErrorIs(t, err, access.ErrMalformed)

	p := access.NewPutAccess()
	p.AddUint8(1)
	_, err = DecodeString[uint8](Packed, p.Pack(), Truncate)
	assert.ErrorIs(t, err, access.ErrTypeMismatch)
}

func TestEncodeString_PackedOverflow(t *testing.T) {
	big := fixedstr.FromStringTrunc[uint16](strings.Repeat("b", 9000))
	_, err := EncodeString(Packed, big)
	assert.Error(t, err)

	ok, err := EncodeString(JSON, big)
	require.NoError(t, err)
	assert.Len(t, ok, 9002)
}

func TestArray_RoundTrip(t *testing.T) {
	a := array.Of[uint8](int32(1), int32(-2), int32(3))
	for _, f := range plainFormats {
		data, err := EncodeArray(f, a)
		require.NoError(t, err, f.String())

		back, err := DecodeArray[int32, uint8](f, data, Reject)
		require.NoError(t, err, f.String())
		assert.True(t, array.Equal(a, back), f.String())
	}

	data, err := EncodeArray(JSON, array.New[int32, uint8]())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestArray_Policies(t *testing.T) {
	in := make([]uint16, 300)
	for i := range in {
		in[i] = uint16(i)
	}
	for _, f := range plainFormats {
		var data []byte
		var err error
		switch f {
		case JSON:
			data, err = json.Marshal(in)
		case MsgPack:
			data, err = msgpack.Marshal(in)
		case CBOR:
			data, err = cbor.Marshal(in)
		case YAML:
			data, err = yaml.Marshal(in)
		}
		require.NoError(t, err)

		_, err = DecodeArray[uint16, uint8](f, data, Reject)
		var lenErr *length.InvalidLength[uint16]
		require.ErrorAs(t, err, &lenErr, f.String())
		assert.Equal(t, in, lenErr.Into())

		v, err := DecodeArray[uint16, uint8](f, data, Truncate)
		require.NoError(t, err, f.String())
		assert.Equal(t, in[:255], v.Slice())
	}
}

func TestArray_Packed(t *testing.T) {
	raw := array.Of[uint8](byte(0xAA), byte(0xBB), byte(0xCC))
	data, err := EncodeArray(Packed, raw)
	require.NoError(t, err)

	p := access.NewPutAccess()
	p.AddBytes([]byte{0xAA, 0xBB, 0xCC})
	assert.Equal(t, p.Pack(), data)

	back, err := DecodeArray[byte, uint8](Packed, data, Reject)
	require.NoError(t, err)
	assert.True(t, array.Equal(raw, back))

	long := access.NewPutAccess()
	long.AddBytes(make([]byte, 256))
	longData := long.Pack()

	_, err = DecodeArray[byte, uint8](Packed, longData, Reject)
	assert.True(t, errors.Is(err, length.ErrInvalidLength))

	cut, err := DecodeArray[byte, uint8](Packed, longData, Truncate)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), cut.Len())

	_, err = EncodeArray(Packed, array.Of[uint8](1, 2))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = DecodeArray[int, uint8](Packed, data, Reject)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFormatAndPolicyNames(t *testing.T) {
	assert.Equal(t, "json", JSON.String())
	assert.Equal(t, "msgpack", MsgPack.String())
	assert.Equal(t, "cbor", CBOR.String())
	assert.Equal(t, "yaml", YAML.String())
	assert.Equal(t, "packed", Packed.String())
	assert.Equal(t, "Format(9)", Format(9).String())
	assert.Equal(t, "reject", Reject.String())
	assert.Equal(t, "truncate", Truncate.String())
	assert.Equal(t, "Policy(7)", Policy(7).String())
}
