package escrow

import (
	"bytes"

	"liquidnation/charm"
	nativecommon "liquidnation/native/common"
)

// escrowCharms decodes every escrow charm bound to the app identity across
// the given sets. A payload under the identity that does not decode as an
// escrow rejects the operation.
func escrowCharms(app charm.App, sets []charm.Charms) ([]Escrow, error) {
	values := charm.CharmValues(app, sets)
	escrows := make([]Escrow, 0, len(values))
	for _, d := range values {
		var esc Escrow
		if err := d.Value(&esc); err != nil {
			return nil, nativecommon.Structuralf("escrow: undecodable escrow charm for %s: %v", app, err)
		}
		escrows = append(escrows, esc)
	}
	return escrows, nil
}

func singleInputEscrow(app charm.App, tx *charm.Transaction) (*Escrow, error) {
	escrows, err := escrowCharms(app, tx.InputCharms())
	if err != nil {
		return nil, err
	}
	if len(escrows) != 1 {
		return nil, nativecommon.Countf("escrow: expected one input escrow, found %d", len(escrows))
	}
	return &escrows[0], nil
}

func requireNoOutputs(app charm.App, tx *charm.Transaction, op string) error {
	outputs, err := escrowCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(outputs) != 0 {
		return nativecommon.Countf("escrow: %s must destroy the escrow, found %d outputs", op, len(outputs))
	}
	return nil
}

func keyMember(key []byte, set [][]byte) bool {
	if len(key) == 0 {
		return false
	}
	for _, candidate := range set {
		if bytes.Equal(key, candidate) {
			return true
		}
	}
	return false
}

// validateCreate checks that a new escrow is born active, fully described,
// with its identity bound to the creation reference and its declared holding
// backed by real token value in the same transaction.
func validateCreate(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var ref string
	if err := w.Value(&ref); err != nil {
		return nativecommon.Structuralf("escrow: creation witness missing reference: %v", err)
	}
	if charm.Hash(ref) != app.Identity {
		return nativecommon.Invariantf("escrow: escrow identity not bound to creation reference")
	}

	escrows, err := escrowCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(escrows) != 1 {
		return nativecommon.Countf("escrow: creation must produce exactly one escrow, found %d", len(escrows))
	}
	esc := &escrows[0]
	if esc.Status != EscrowActive {
		return nativecommon.Invariantf("escrow: new escrow must be active, got %s", esc.Status)
	}
	if esc.HeldAmount == 0 {
		return nativecommon.Invariantf("escrow: held amount must be positive")
	}
	if esc.ExpiryHeight == 0 {
		return nativecommon.Invariantf("escrow: expiry height must be positive")
	}
	if len(esc.DepositorPubKey) == 0 {
		return nativecommon.Invariantf("escrow: depositor key must be set")
	}
	if len(esc.RecipientPubKey) == 0 {
		return nativecommon.Invariantf("escrow: recipient key must be set")
	}
	if !esc.Type.Valid() {
		return nativecommon.Invariantf("escrow: invalid escrow type %d", esc.Type)
	}
	if esc.Type == TwoOfThree && len(esc.ArbiterPubKey) == 0 {
		return nativecommon.Invariantf("escrow: two-of-three escrow requires an arbiter key")
	}

	// The declared holding must be backed by token value actually present
	// in the transaction outputs.
	heldApp := charm.App{Tag: charm.TagToken, Identity: esc.HeldAppID, VK: app.VK}
	backing, err := charm.SumTokenAmount(heldApp, tx.Outs)
	if err != nil {
		return nativecommon.Structuralf("escrow: held token outputs for %s: %v", heldApp, err)
	}
	if backing < esc.HeldAmount {
		return nativecommon.Invariantf("escrow: held amount %d exceeds backing outputs %d", esc.HeldAmount, backing)
	}
	return nil
}

// validateRelease checks a release: the active escrow is consumed, the
// hash-lock preimage matches when a lock is set, and the signer belongs to
// the permitted set for the escrow's party structure.
func validateRelease(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var proof ReleaseProof
	if err := w.Value(&proof); err != nil {
		return nativecommon.Structuralf("escrow: release proof undecodable: %v", err)
	}
	esc, err := singleInputEscrow(app, tx)
	if err != nil {
		return err
	}
	if esc.Status != EscrowActive {
		return nativecommon.Invariantf("escrow: cannot release escrow in status %s", esc.Status)
	}
	if esc.ReleaseHash != nil {
		if charm.HashBytes(proof.Preimage) != *esc.ReleaseHash {
			return nativecommon.Invariantf("escrow: release preimage does not match hash lock")
		}
	}
	if !keyMember(proof.SignerPubKey, esc.AuthorizedReleasers()) {
		return nativecommon.Authorizationf("escrow: release signer not in the permitted set for %s", esc.Type)
	}
	return requireNoOutputs(app, tx, "release")
}

// validateRefund checks a refund: an active escrow needs a refund request
// witness, an expired one refunds without it. Either way the escrow is
// consumed. The request signer is not matched against the depositor key; the
// surrounding transaction's spending conditions carry that burden.
func validateRefund(app charm.App, tx *charm.Transaction, w charm.Data) error {
	esc, err := singleInputEscrow(app, tx)
	if err != nil {
		return err
	}
	switch esc.Status {
	case EscrowExpired:
	case EscrowActive:
		var request RefundRequest
		if err := w.Value(&request); err != nil {
			return nativecommon.Structuralf("escrow: refund of active escrow requires a request witness: %v", err)
		}
	default:
		return nativecommon.Invariantf("escrow: cannot refund escrow in status %s", esc.Status)
	}
	return requireNoOutputs(app, tx, "refund")
}

// validateDispute checks a dispute opening: only a party to an active
// two-of-three escrow may dispute, and the escrow is carried forward in
// disputed status.
func validateDispute(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var dispute DisputeData
	if err := w.Value(&dispute); err != nil {
		return nativecommon.Structuralf("escrow: dispute witness undecodable: %v", err)
	}
	esc, err := singleInputEscrow(app, tx)
	if err != nil {
		return err
	}
	if esc.Status != EscrowActive {
		return nativecommon.Invariantf("escrow: cannot dispute escrow in status %s", esc.Status)
	}
	if esc.Type != TwoOfThree {
		return nativecommon.Invariantf("escrow: disputes require a two-of-three escrow, got %s", esc.Type)
	}
	if !keyMember(dispute.InitiatorPubKey, [][]byte{esc.DepositorPubKey, esc.RecipientPubKey}) {
		return nativecommon.Authorizationf("escrow: dispute initiator is neither depositor nor recipient")
	}
	outputs, err := escrowCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(outputs) != 1 {
		return nativecommon.Countf("escrow: dispute must carry the escrow forward, found %d outputs", len(outputs))
	}
	if outputs[0].Status != EscrowDisputed {
		return nativecommon.Invariantf("escrow: disputed escrow must have disputed status, got %s", outputs[0].Status)
	}
	return nil
}

// validateResolve checks a dispute resolution: only the arbiter may resolve,
// and the disputed escrow is consumed. The payout direction is not
// cross-checked against the transaction outputs here.
func validateResolve(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var proof ReleaseProof
	if err := w.Value(&proof); err != nil {
		return nativecommon.Structuralf("escrow: resolution proof undecodable: %v", err)
	}
	esc, err := singleInputEscrow(app, tx)
	if err != nil {
		return err
	}
	if esc.Status != EscrowDisputed {
		return nativecommon.Invariantf("escrow: cannot resolve escrow in status %s", esc.Status)
	}
	if len(esc.ArbiterPubKey) == 0 {
		return nativecommon.Invariantf("escrow: disputed escrow has no arbiter")
	}
	if !bytes.Equal(proof.SignerPubKey, esc.ArbiterPubKey) {
		return nativecommon.Authorizationf("escrow: only the arbiter may resolve a dispute")
	}
	return requireNoOutputs(app, tx, "resolve")
}

// validateTransfer checks a pure custody change: input and output escrows
// pair up with every holding-relevant field byte-identical.
func validateTransfer(app charm.App, tx *charm.Transaction) error {
	inputs, err := escrowCharms(app, tx.InputCharms())
	if err != nil {
		return err
	}
	outputs, err := escrowCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(inputs) != len(outputs) {
		return nativecommon.Countf("escrow: transfer pairs %d inputs with %d outputs", len(inputs), len(outputs))
	}
	for i := range inputs {
		in, out := &inputs[i], &outputs[i]
		switch {
		case in.EscrowID != out.EscrowID:
			return nativecommon.Invariantf("escrow: transfer mutates id of escrow %d", i)
		case in.HeldAmount != out.HeldAmount:
			return nativecommon.Invariantf("escrow: transfer mutates held amount of escrow %d", i)
		case in.HeldAppID != out.HeldAppID:
			return nativecommon.Invariantf("escrow: transfer mutates held asset of escrow %d", i)
		case in.Status != out.Status:
			return nativecommon.Invariantf("escrow: transfer mutates status of escrow %d", i)
		case !bytes.Equal(in.DepositorPubKey, out.DepositorPubKey):
			return nativecommon.Invariantf("escrow: transfer mutates depositor of escrow %d", i)
		case !bytes.Equal(in.RecipientPubKey, out.RecipientPubKey):
			return nativecommon.Invariantf("escrow: transfer mutates recipient of escrow %d", i)
		}
	}
	return nil
}
