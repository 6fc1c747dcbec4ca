package escrow

import "liquidnation/charm"

// EscrowStatus represents the lifecycle states of an escrow.
type EscrowStatus uint8

const (
	EscrowActive EscrowStatus = iota
	EscrowReleased
	EscrowRefunded
	EscrowExpired
	EscrowDisputed
)

// Valid reports whether the status value is within the supported range.
func (s EscrowStatus) Valid() bool {
	switch s {
	case EscrowActive, EscrowReleased, EscrowRefunded, EscrowExpired, EscrowDisputed:
		return true
	default:
		return false
	}
}

// String returns the lowercase name of the status.
func (s EscrowStatus) String() string {
	switch s {
	case EscrowActive:
		return "active"
	case EscrowReleased:
		return "released"
	case EscrowRefunded:
		return "refunded"
	case EscrowExpired:
		return "expired"
	case EscrowDisputed:
		return "disputed"
	default:
		return "unknown"
	}
}

// EscrowType selects the party structure of an escrow. Only the two-of-three
// form carries an arbiter and supports disputes.
type EscrowType uint8

const (
	// TwoParty is a simple depositor to recipient escrow.
	TwoParty EscrowType = iota
	// TwoOfTwo requires both parties to agree.
	TwoOfTwo
	// TwoOfThree adds an arbiter who can resolve disputes.
	TwoOfThree
)

// Valid reports whether the type value is within the supported range.
func (t EscrowType) Valid() bool {
	switch t {
	case TwoParty, TwoOfTwo, TwoOfThree:
		return true
	default:
		return false
	}
}

// String returns the lowercase name of the escrow type.
func (t EscrowType) String() string {
	switch t {
	case TwoParty:
		return "two_party"
	case TwoOfTwo:
		return "two_of_two"
	case TwoOfThree:
		return "two_of_three"
	default:
		return "unknown"
	}
}

// Escrow is the entity charm representing assets held in trust until release
// conditions are met. The escrow identity is the hash of the reference
// consumed at creation. ArbiterPubKey must be present exactly when the type
// is TwoOfThree; creation enforces the pairing.
type Escrow struct {
	// EscrowID mirrors the application identity for convenience.
	EscrowID charm.B32 `cbor:"escrow_id"`
	// DepositorPubKey identifies the party funding the escrow.
	DepositorPubKey []byte `cbor:"depositor_pubkey"`
	// RecipientPubKey identifies the party the funds release to.
	RecipientPubKey []byte `cbor:"recipient_pubkey"`
	// ArbiterPubKey is the dispute resolver, nil unless TwoOfThree.
	ArbiterPubKey []byte `cbor:"arbiter_pubkey,omitempty"`
	// Type selects the party structure.
	Type EscrowType `cbor:"escrow_type"`
	// HeldAppID is the token identity held in trust.
	HeldAppID charm.B32 `cbor:"held_app_id"`
	// HeldAmount is the fungible amount held.
	HeldAmount uint64 `cbor:"held_amount"`
	// ReleaseHash, when set, requires a matching preimage for release.
	ReleaseHash *charm.B32 `cbor:"release_hash,omitempty"`
	// ExpiryHeight is advisory data; no rule compares it to a live height.
	ExpiryHeight uint64 `cbor:"expiry_height"`
	// Status is the current lifecycle state.
	Status EscrowStatus `cbor:"status"`
	// CreatedAt records the creation height as data.
	CreatedAt uint64 `cbor:"created_at"`
	// OrderID links the escrow to a swap order, when part of a trade.
	OrderID *charm.B32 `cbor:"order_id,omitempty"`
}

// Clone returns a deep copy of the escrow so callers can mutate the copy
// without affecting the original.
func (e *Escrow) Clone() *Escrow {
	if e == nil {
		return nil
	}
	clone := *e
	clone.DepositorPubKey = append([]byte(nil), e.DepositorPubKey...)
	clone.RecipientPubKey = append([]byte(nil), e.RecipientPubKey...)
	clone.ArbiterPubKey = append([]byte(nil), e.ArbiterPubKey...)
	if e.ReleaseHash != nil {
		h := *e.ReleaseHash
		clone.ReleaseHash = &h
	}
	if e.OrderID != nil {
		id := *e.OrderID
		clone.OrderID = &id
	}
	return &clone
}

// AuthorizedReleasers returns the signer set permitted to release funds for
// the escrow's party structure: depositor and recipient always, plus the
// arbiter for TwoOfThree.
func (e *Escrow) AuthorizedReleasers() [][]byte {
	signers := [][]byte{e.DepositorPubKey, e.RecipientPubKey}
	if e.Type == TwoOfThree && len(e.ArbiterPubKey) > 0 {
		signers = append(signers, e.ArbiterPubKey)
	}
	return signers
}

// ReleaseProof is the witness presented to release escrowed funds or resolve
// a dispute: the hash-lock preimage (when a lock is set) plus an opaque
// signature and signer key. Signature bytes are compared for membership only;
// cryptographic verification belongs to the surrounding transaction.
type ReleaseProof struct {
	Preimage     []byte `cbor:"preimage"`
	Signature    []byte `cbor:"signature"`
	SignerPubKey []byte `cbor:"signer_pubkey"`
}

// RefundRequest is the witness for refunding a still-active escrow.
type RefundRequest struct {
	Reason    string `cbor:"reason"`
	Signature []byte `cbor:"signature"`
}

// DisputeData is the witness opening a dispute on a TwoOfThree escrow.
type DisputeData struct {
	Reason          string     `cbor:"reason"`
	EvidenceHash    *charm.B32 `cbor:"evidence_hash,omitempty"`
	InitiatorPubKey []byte     `cbor:"initiator_pubkey"`
}
