package charm

import (
	"bytes"
	"errors"
	"testing"
)

type payload struct {
	Name   string `cbor:"name"`
	Amount uint64 `cbor:"amount"`
}

func TestDataRoundTrip(t *testing.T) {
	in := payload{Name: "order", Amount: 1000}
	d, err := NewData(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out payload
	if err := d.Value(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDataDeterministicEncoding(t *testing.T) {
	a := MustData(payload{Name: "x", Amount: 1})
	b := MustData(payload{Name: "x", Amount: 1})
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("identical values encoded differently")
	}
}

func TestDataEmptyPayload(t *testing.T) {
	var d Data
	if !d.IsZero() {
		t.Fatalf("zero data must report absent")
	}
	var out payload
	if err := d.Value(&out); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("expected ErrEmptyData, got %v", err)
	}
}

func TestDataDecodeMismatch(t *testing.T) {
	d := MustData("just a string")
	var out payload
	if err := d.Value(&out); err == nil {
		t.Fatalf("expected decode failure for mismatched shape")
	}
}

func TestFromBytesClones(t *testing.T) {
	raw := MustData(uint64(5)).Bytes()
	d := FromBytes(raw)
	raw[0] ^= 0xFF
	var amount uint64
	if err := d.Value(&amount); err != nil {
		t.Fatalf("decode after caller mutation: %v", err)
	}
	if amount != 5 {
		t.Fatalf("payload not isolated from caller buffer")
	}
}
