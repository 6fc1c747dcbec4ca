package escrow

import (
	"testing"

	"liquidnation/charm"
)

func TestStatusAndTypeValidity(t *testing.T) {
	for _, s := range []EscrowStatus{EscrowActive, EscrowReleased, EscrowRefunded, EscrowExpired, EscrowDisputed} {
		if !s.Valid() {
			t.Fatalf("status %s reported invalid", s)
		}
	}
	if EscrowStatus(99).Valid() {
		t.Fatalf("out-of-range status reported valid")
	}
	for _, typ := range []EscrowType{TwoParty, TwoOfTwo, TwoOfThree} {
		if !typ.Valid() {
			t.Fatalf("type %s reported invalid", typ)
		}
	}
	if EscrowType(99).Valid() {
		t.Fatalf("out-of-range type reported valid")
	}
}

func TestAuthorizedReleasers(t *testing.T) {
	esc := Escrow{
		DepositorPubKey: []byte("depositor"),
		RecipientPubKey: []byte("recipient"),
		ArbiterPubKey:   []byte("arbiter"),
		Type:            TwoParty,
	}
	if got := len(esc.AuthorizedReleasers()); got != 2 {
		t.Fatalf("two-party set size %d, want 2", got)
	}
	esc.Type = TwoOfThree
	if got := len(esc.AuthorizedReleasers()); got != 3 {
		t.Fatalf("two-of-three set size %d, want 3", got)
	}
}

func TestCloneIsolatesPointers(t *testing.T) {
	lock := charm.Hash("lock")
	order := charm.Hash("order")
	esc := Escrow{
		DepositorPubKey: []byte("depositor"),
		RecipientPubKey: []byte("recipient"),
		ReleaseHash:     &lock,
		OrderID:         &order,
	}
	clone := esc.Clone()
	clone.DepositorPubKey[0] = 'X'
	*clone.ReleaseHash = charm.Hash("other")
	if esc.DepositorPubKey[0] == 'X' {
		t.Fatalf("clone shares depositor key storage")
	}
	if *esc.ReleaseHash != lock {
		t.Fatalf("clone shares release hash storage")
	}
}
