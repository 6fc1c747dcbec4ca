package swap

import "liquidnation/charm"

// OrderStatus represents the lifecycle states of a swap order.
type OrderStatus uint8

const (
	OrderOpen OrderStatus = iota
	OrderFilled
	OrderCancelled
	OrderExpired
)

// Valid reports whether the status value is within the supported range.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderOpen, OrderFilled, OrderCancelled, OrderExpired:
		return true
	default:
		return false
	}
}

// String returns the lowercase name of the status.
func (s OrderStatus) String() string {
	switch s {
	case OrderOpen:
		return "open"
	case OrderFilled:
		return "filled"
	case OrderCancelled:
		return "cancelled"
	case OrderExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// SwapOrder is the entity charm representing one open order in the
// peer-to-peer order book. The order identity is the hash of the UTXO spent
// at creation; the struct itself is carried output-to-input across
// transactions until a fill or cancel destroys it.
type SwapOrder struct {
	// MakerPubKey identifies the order maker. Opaque to validation.
	MakerPubKey []byte `cbor:"maker_pubkey"`
	// OfferAppID is the token identity being offered.
	OfferAppID charm.B32 `cbor:"offer_app_id"`
	// OfferAmount is the fungible amount offered.
	OfferAmount uint64 `cbor:"offer_amount"`
	// WantAppID is the token identity wanted in return.
	WantAppID charm.B32 `cbor:"want_app_id"`
	// WantAmount is the fungible amount wanted.
	WantAmount uint64 `cbor:"want_amount"`
	// DestChain selects the destination chain for cross-chain swaps.
	// A routing hint, opaque to validation.
	DestChain uint8 `cbor:"dest_chain"`
	// DestAddress is the maker's address on the destination chain.
	DestAddress []byte `cbor:"dest_address"`
	// ExpiryHeight is advisory data; no rule compares it to a live height.
	ExpiryHeight uint64 `cbor:"expiry_height"`
	// AllowPartial permits partial fills.
	AllowPartial bool `cbor:"allow_partial"`
	// Status is the current lifecycle state.
	Status OrderStatus `cbor:"status"`
	// FilledAmount accumulates partial fills, never exceeding OfferAmount.
	FilledAmount uint64 `cbor:"filled_amount"`
}

// Clone returns a deep copy of the order so callers can mutate the copy
// without affecting the original.
func (o *SwapOrder) Clone() *SwapOrder {
	if o == nil {
		return nil
	}
	clone := *o
	clone.MakerPubKey = append([]byte(nil), o.MakerPubKey...)
	clone.DestAddress = append([]byte(nil), o.DestAddress...)
	return &clone
}

// Remaining returns the unfilled portion of the offer, clamped at zero.
func (o *SwapOrder) Remaining() uint64 {
	if o.FilledAmount >= o.OfferAmount {
		return 0
	}
	return o.OfferAmount - o.FilledAmount
}

// FillData is the witness a taker supplies when filling an order.
type FillData struct {
	// TakerPubKey identifies the taker. Opaque to validation.
	TakerPubKey []byte `cbor:"taker_pubkey"`
	// FillAmount is the portion of the offer being taken.
	FillAmount uint64 `cbor:"fill_amount"`
	// TakerDestAddress receives the offered asset on the taker's chain.
	TakerDestAddress []byte `cbor:"taker_dest_address"`
}
