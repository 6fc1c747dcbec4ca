package charm

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Tags understood by the swap and escrow applications. Every application in
// this repository attaches its stateful entity under the NFT tag and its
// fungible value under the token tag.
const (
	// TagNFT marks the charm carrying an application's stateful entity
	// (a swap order or an escrow).
	TagNFT byte = 'n'
	// TagToken marks charms carrying fungible token amounts.
	TagToken byte = 't'
)

// B32 is a 32-byte value used for identities, transaction IDs and hash-lock
// commitments.
type B32 [32]byte

// ParseB32 decodes a 64-character hex string into a B32 value.
func ParseB32(s string) (B32, error) {
	var b B32
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return b, fmt.Errorf("charm: invalid hex value: %w", err)
	}
	if len(raw) != len(b) {
		return b, fmt.Errorf("charm: value must be %d bytes, got %d", len(b), len(raw))
	}
	copy(b[:], raw)
	return b, nil
}

// String returns the lowercase hex encoding of the value.
func (b B32) String() string { return hex.EncodeToString(b[:]) }

// Bytes returns a copy of the underlying bytes.
func (b B32) Bytes() []byte { return append([]byte(nil), b[:]...) }

// IsZero reports whether every byte of the value is zero.
func (b B32) IsZero() bool { return b == B32{} }

// UtxoID references a single spendable output as transaction ID plus output
// index. Its string form is "<txid hex>:<index>".
type UtxoID struct {
	TxID  B32
	Index uint32
}

// ParseUtxoID parses the canonical "<txid hex>:<index>" form.
func ParseUtxoID(s string) (UtxoID, error) {
	var id UtxoID
	txid, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return id, fmt.Errorf("charm: utxo reference %q missing output index", s)
	}
	parsed, err := ParseB32(txid)
	if err != nil {
		return id, fmt.Errorf("charm: utxo reference %q: %w", s, err)
	}
	index, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return id, fmt.Errorf("charm: utxo reference %q has invalid index: %w", s, err)
	}
	id.TxID = parsed
	id.Index = uint32(index)
	return id, nil
}

// String returns the canonical "<txid hex>:<index>" form.
func (u UtxoID) String() string {
	return u.TxID.String() + ":" + strconv.FormatUint(uint64(u.Index), 10)
}

// App identifies one logical contract instance: a single-byte tag, a globally
// unique 32-byte identity and the verification key of the contract binary that
// enforces its rules. The identity is bound at creation time to the hash of a
// consumed reference, so duplicates cannot be forged without controlling a
// specific prior output.
type App struct {
	Tag      byte
	Identity B32
	VK       []byte
}

// AppKey is the comparable form of an App, usable as a map key inside charm
// sets.
type AppKey struct {
	Tag      byte
	Identity B32
	VK       string
}

// Key returns the comparable form of the application identity.
func (a App) Key() AppKey {
	return AppKey{Tag: a.Tag, Identity: a.Identity, VK: string(a.VK)}
}

// App reconstructs the App value behind the key.
func (k AppKey) App() App {
	return App{Tag: k.Tag, Identity: k.Identity, VK: []byte(k.VK)}
}

// String renders the identity as "<tag>/<identity hex>".
func (a App) String() string {
	return string(rune(a.Tag)) + "/" + a.Identity.String()
}
