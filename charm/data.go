package charm

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ErrEmptyData is returned when a value is decoded from an absent payload.
var ErrEmptyData = errors.New("charm: empty data payload")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Core deterministic encoding keeps payload bytes stable across
	// encoders, which the identity and transfer checks rely on.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Data is an opaque charm payload: the deterministic CBOR encoding of a typed
// value. A zero Data represents an absent payload. Validators decode Data into
// the entity or witness type they expect and treat any decode failure as a
// rejection, never a crash.
type Data struct {
	raw []byte
}

// NewData encodes a value into a Data payload.
func NewData(v any) (Data, error) {
	raw, err := encMode.Marshal(v)
	if err != nil {
		return Data{}, fmt.Errorf("charm: encode payload: %w", err)
	}
	return Data{raw: raw}, nil
}

// MustData encodes a value and panics on failure. Intended for tests and
// examples where the value is known to be encodable.
func MustData(v any) Data {
	d, err := NewData(v)
	if err != nil {
		panic(err)
	}
	return d
}

// FromBytes wraps already-encoded payload bytes without copying semantics
// beyond a defensive clone.
func FromBytes(raw []byte) Data {
	return Data{raw: append([]byte(nil), raw...)}
}

// Value decodes the payload into out, which must be a pointer. Decoding an
// absent payload returns ErrEmptyData.
func (d Data) Value(out any) error {
	if d.IsZero() {
		return ErrEmptyData
	}
	if err := decMode.Unmarshal(d.raw, out); err != nil {
		return fmt.Errorf("charm: decode payload: %w", err)
	}
	return nil
}

// IsZero reports whether the payload is absent.
func (d Data) IsZero() bool { return len(d.raw) == 0 }

// Bytes returns a copy of the encoded payload.
func (d Data) Bytes() []byte { return append([]byte(nil), d.raw...) }
