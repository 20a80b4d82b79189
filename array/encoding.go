package array

import (
	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// A FixedArray encodes exactly like the slice of its elements. Decoding goes
// through TryFromSlice, so inputs longer than the length type are rejected.

// elems never returns nil, so an empty array encodes as [] rather than null.
func (a FixedArray[T, L]) elems() []T {
	if s := a.Slice(); s != nil {
		return s
	}
	return []T{}
}

func (a *FixedArray[T, L]) adopt(s []T) error {
	v, err := TryFromSlice[L](s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a FixedArray[T, L]) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.elems())
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to the empty array.
func (a *FixedArray[T, L]) UnmarshalJSON(data []byte) error {
	var s []T
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return a.adopt(s)
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (a FixedArray[T, L]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(a.elems())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (a *FixedArray[T, L]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var s []T
	if err := dec.Decode(&s); err != nil {
		return err
	}
	return a.adopt(s)
}

// MarshalCBOR implements cbor.Marshaler.
func (a FixedArray[T, L]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a.elems())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (a *FixedArray[T, L]) UnmarshalCBOR(data []byte) error {
	var s []T
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	return a.adopt(s)
}

// MarshalYAML implements yaml.Marshaler.
func (a FixedArray[T, L]) MarshalYAML() (any, error) {
	return a.elems(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *FixedArray[T, L]) UnmarshalYAML(value *yaml.Node) error {
	var s []T
	if err := value.Decode(&s); err != nil {
		return err
	}
	return a.adopt(s)
}
