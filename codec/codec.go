// Package codec moves FixedString and FixedArray values across a serialization
// boundary with an explicit policy for input that does not fit the length
// type.
//
// Encoding is identical to the native Marshal methods on the types, which in
// turn match the encoding of a plain string or slice. Decoding first decodes
// the plain form and then applies the Policy.
package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/quickwritereader/smallfixed/access"
	"github.com/quickwritereader/smallfixed/array"
	"github.com/quickwritereader/smallfixed/fixedstr"
	"github.com/quickwritereader/smallfixed/length"
	"github.com/quickwritereader/smallfixed/packable"
)

// Format selects the wire encoding.
type Format uint8

const (
	JSON Format = iota
	MsgPack
	CBOR
	YAML
	// Packed is the offset-header layout from the access package. It carries
	// strings and byte arrays only.
	Packed
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case MsgPack:
		return "msgpack"
	case CBOR:
		return "cbor"
	case YAML:
		return "yaml"
	case Packed:
		return "packed"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Policy decides what a decoder does with input longer than the length type.
type Policy uint8

const (
	// Reject fails with an error wrapping length.ErrInvalidLength.
	Reject Policy = iota
	// Truncate keeps the longest prefix that fits and reports the cut through
	// the length package's logger.
	Truncate
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

var (
	ErrUnsupported   = errors.New("codec: unsupported format")
	ErrUnknownPolicy = errors.New("codec: unknown policy")
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func unsupported(f Format, what string) error {
	return fmt.Errorf("%w: %s for %s", ErrUnsupported, f, what)
}

func checkPolicy(p Policy) error {
	if p != Reject && p != Truncate {
		return fmt.Errorf("%w: %s", ErrUnknownPolicy, p)
	}
	return nil
}

// marshal encodes v, which carries its own Marshal methods, with the library
// behind f.
func marshal(f Format, v any) ([]byte, error) {
	switch f {
	case JSON:
		return jsonAPI.Marshal(v)
	case MsgPack:
		return msgpack.Marshal(v)
	case CBOR:
		return cbor.Marshal(v)
	case YAML:
		return yaml.Marshal(v)
	default:
		return nil, unsupported(f, fmt.Sprintf("%T", v))
	}
}

// unmarshal decodes the plain form of a value into v.
func unmarshal(f Format, data []byte, v any) error {
	switch f {
	case JSON:
		return jsonAPI.Unmarshal(data, v)
	case MsgPack:
		return msgpack.Unmarshal(data, v)
	case CBOR:
		return cbor.Unmarshal(data, v)
	case YAML:
		return yaml.Unmarshal(data, v)
	default:
		return unsupported(f, fmt.Sprintf("%T", v))
	}
}

func decodeErr(f Format, err error) error {
	return fmt.Errorf("codec: decode %s: %w", f, err)
}

// EncodeString encodes s as a plain string. The Packed form is a buffer with
// a single string field.
func EncodeString[L length.Length](f Format, s fixedstr.FixedString[L]) ([]byte, error) {
	if f == Packed {
		p := access.GetPutAccess()
		defer access.ReleasePutAccess(p)
		p.AddPackable(packable.PackFixedString[L](s))
		out := p.Pack()
		if err := p.Err(); err != nil {
			return nil, fmt.Errorf("codec: encode %s: %w", f, err)
		}
		return out, nil
	}
	return marshal(f, s)
}

// DecodeString decodes a string and builds a FixedString from it under p.
func DecodeString[L length.Length](f Format, data []byte, p Policy) (fixedstr.FixedString[L], error) {
	var empty fixedstr.FixedString[L]
	if err := checkPolicy(p); err != nil {
		return empty, err
	}

	if f == Packed {
		g, err := access.NewGetAccess(data)
		if err != nil {
			return empty, decodeErr(f, err)
		}
		unpack := packable.UnpackFixedString[L]
		if p == Truncate {
			unpack = packable.UnpackFixedStringTrunc[L]
		}
		out, err := unpack(g, 0)
		if err != nil {
			return empty, decodeErr(f, err)
		}
		return out, nil
	}

	var s string
	if err := unmarshal(f, data, &s); err != nil {
		return empty, decodeErr(f, err)
	}
	if p == Truncate {
		return fixedstr.FromStringTrunc[L](s), nil
	}
	out, err := fixedstr.FromString[L](s)
	if err != nil {
		return empty, decodeErr(f, err)
	}
	return out, nil
}

// EncodeArray encodes a as a plain sequence. Packed accepts byte arrays only.
func EncodeArray[T any, L length.Length](f Format, a array.FixedArray[T, L]) ([]byte, error) {
	if f == Packed {
		b, ok := any(a).(array.FixedArray[byte, L])
		if !ok {
			return nil, unsupported(f, fmt.Sprintf("%T", a))
		}
		p := access.GetPutAccess()
		defer access.ReleasePutAccess(p)
		p.AddPackable(packable.PackFixedBytes[L](b))
		out := p.Pack()
		if err := p.Err(); err != nil {
			return nil, fmt.Errorf("codec: encode %s: %w", f, err)
		}
		return out, nil
	}
	return marshal(f, a)
}

// DecodeArray decodes a sequence and builds a FixedArray from it under p.
func DecodeArray[T any, L length.Length](f Format, data []byte, p Policy) (array.FixedArray[T, L], error) {
	var empty array.FixedArray[T, L]
	if err := checkPolicy(p); err != nil {
		return empty, err
	}

	if f == Packed {
		out, ok := any(&empty).(*array.FixedArray[byte, L])
		if !ok {
			return empty, unsupported(f, fmt.Sprintf("%T", empty))
		}
		g, err := access.NewGetAccess(data)
		if err != nil {
			return empty, decodeErr(f, err)
		}
		unpack := packable.UnpackFixedBytes[L]
		if p == Truncate {
			unpack = packable.UnpackFixedBytesTrunc[L]
		}
		if *out, err = unpack(g, 0); err != nil {
			return array.FixedArray[T, L]{}, decodeErr(f, err)
		}
		return empty, nil
	}

	var s []T
	if err := unmarshal(f, data, &s); err != nil {
		return empty, decodeErr(f, err)
	}
	if p == Truncate {
		return array.FromSliceTrunc[L](s), nil
	}
	out, err := array.TryFromSlice[L](s)
	if err != nil {
		return empty, decodeErr(f, err)
	}
	return out, nil
}
