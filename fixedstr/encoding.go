package fixedstr

import (
	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// A FixedString encodes exactly like a plain string. Decoders go through
// FromString and so reject overlong or invalid input; use the codec package
// to decode with the truncating policy instead.

// MarshalJSON implements json.Marshaler.
func (f FixedString[L]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FixedString[L]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return f.adopt(s)
}

// MarshalText implements encoding.TextMarshaler.
func (f FixedString[L]) MarshalText() ([]byte, error) {
	return f.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FixedString[L]) UnmarshalText(text []byte) error {
	return f.adopt(string(text))
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (f FixedString[L]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(f.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (f *FixedString[L]) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return f.adopt(s)
}

// MarshalCBOR implements cbor.Marshaler.
func (f FixedString[L]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(f.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (f *FixedString[L]) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	return f.adopt(s)
}

// MarshalYAML implements yaml.Marshaler.
func (f FixedString[L]) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FixedString[L]) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return f.adopt(s)
}

func (f *FixedString[L]) adopt(s string) error {
	v, err := FromString[L](s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
