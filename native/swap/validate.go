package swap

import (
	"liquidnation/charm"
	nativecommon "liquidnation/native/common"
)

// orderCharms decodes every order charm bound to the app identity across the
// given sets. A payload under the identity that does not decode as an order
// rejects the operation.
func orderCharms(app charm.App, sets []charm.Charms) ([]SwapOrder, error) {
	values := charm.CharmValues(app, sets)
	orders := make([]SwapOrder, 0, len(values))
	for _, d := range values {
		var order SwapOrder
		if err := d.Value(&order); err != nil {
			return nil, nativecommon.Structuralf("swap: undecodable order charm for %s: %v", app, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// singleInputOrder fetches the one order charm the transaction must consume.
func singleInputOrder(app charm.App, tx *charm.Transaction) (*SwapOrder, error) {
	orders, err := orderCharms(app, tx.InputCharms())
	if err != nil {
		return nil, err
	}
	if len(orders) != 1 {
		return nil, nativecommon.Countf("swap: expected one input order, found %d", len(orders))
	}
	return &orders[0], nil
}

// validateCreate checks that a new order is born with its identity bound to a
// consumed unique reference and with a clean Open state.
func validateCreate(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var ref string
	if err := w.Value(&ref); err != nil {
		return nativecommon.Structuralf("swap: creation witness missing reference: %v", err)
	}
	if charm.Hash(ref) != app.Identity {
		return nativecommon.Invariantf("swap: order identity not bound to creation reference")
	}
	utxo, err := charm.ParseUtxoID(ref)
	if err != nil {
		return nativecommon.Structuralf("swap: creation reference is not a utxo: %v", err)
	}
	if !tx.Spends(utxo) {
		return nativecommon.Invariantf("swap: creation reference %s is not spent by the transaction", utxo)
	}

	orders, err := orderCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(orders) != 1 {
		return nativecommon.Countf("swap: creation must produce exactly one order, found %d", len(orders))
	}
	order := &orders[0]
	if order.Status != OrderOpen {
		return nativecommon.Invariantf("swap: new order must be open, got %s", order.Status)
	}
	if order.FilledAmount != 0 {
		return nativecommon.Invariantf("swap: new order has filled amount %d", order.FilledAmount)
	}
	if order.OfferAmount == 0 {
		return nativecommon.Invariantf("swap: offer amount must be positive")
	}
	if order.WantAmount == 0 {
		return nativecommon.Invariantf("swap: want amount must be positive")
	}
	return nil
}

// validateFill checks a full fill: the open order is destroyed and the taker
// supplies at least the wanted amount of the wanted asset among the
// transaction inputs.
func validateFill(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var fill FillData
	if err := w.Value(&fill); err != nil {
		return nativecommon.Structuralf("swap: fill witness undecodable: %v", err)
	}
	order, err := singleInputOrder(app, tx)
	if err != nil {
		return err
	}
	if order.Status != OrderOpen {
		return nativecommon.Invariantf("swap: cannot fill order in status %s", order.Status)
	}
	outputs, err := orderCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(outputs) != 0 {
		return nativecommon.Countf("swap: full fill must destroy the order, found %d outputs", len(outputs))
	}

	wantApp := charm.App{Tag: charm.TagToken, Identity: order.WantAppID, VK: app.VK}
	takerInput, err := charm.SumTokenAmount(wantApp, tx.InputCharms())
	if err != nil {
		return nativecommon.Structuralf("swap: taker inputs for %s: %v", wantApp, err)
	}
	if takerInput < order.WantAmount {
		return nativecommon.Invariantf("swap: taker supplies %d of wanted asset, order wants %d", takerInput, order.WantAmount)
	}
	return nil
}

// validateCancel checks that an open order is destroyed with nothing left
// behind. Authorization is implicit: whoever can spend the order's UTXO in
// the surrounding transaction may cancel it.
func validateCancel(app charm.App, tx *charm.Transaction) error {
	order, err := singleInputOrder(app, tx)
	if err != nil {
		return err
	}
	if order.Status != OrderOpen {
		return nativecommon.Invariantf("swap: cannot cancel order in status %s", order.Status)
	}
	outputs, err := orderCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(outputs) != 0 {
		return nativecommon.Countf("swap: cancel must destroy the order, found %d outputs", len(outputs))
	}
	return nil
}

// validatePartialFill checks the arithmetic of a partial fill: the fill
// amount fits the remaining offer, the output order accumulates it, and the
// status flips to filled exactly when the offer is exhausted.
func validatePartialFill(app charm.App, tx *charm.Transaction, w charm.Data) error {
	var fill FillData
	if err := w.Value(&fill); err != nil {
		return nativecommon.Structuralf("swap: partial fill witness undecodable: %v", err)
	}
	input, err := singleInputOrder(app, tx)
	if err != nil {
		return err
	}
	if !input.AllowPartial {
		return nativecommon.Invariantf("swap: order does not allow partial fills")
	}
	if input.Status != OrderOpen {
		return nativecommon.Invariantf("swap: cannot fill order in status %s", input.Status)
	}
	outputs, err := orderCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(outputs) != 1 {
		return nativecommon.Countf("swap: partial fill must carry the order forward, found %d outputs", len(outputs))
	}
	output := &outputs[0]

	if input.FilledAmount > input.OfferAmount {
		return nativecommon.Invariantf("swap: input order filled %d beyond offer %d", input.FilledAmount, input.OfferAmount)
	}
	remaining := input.Remaining()
	if fill.FillAmount == 0 {
		return nativecommon.Invariantf("swap: fill amount must be positive")
	}
	if fill.FillAmount > remaining {
		return nativecommon.Invariantf("swap: fill amount %d exceeds remaining %d", fill.FillAmount, remaining)
	}
	newFilled := input.FilledAmount + fill.FillAmount
	if output.FilledAmount != newFilled {
		return nativecommon.Invariantf("swap: output filled amount %d, want %d", output.FilledAmount, newFilled)
	}
	if newFilled >= input.OfferAmount {
		if output.Status != OrderFilled {
			return nativecommon.Invariantf("swap: exhausted order must be filled, got %s", output.Status)
		}
	} else if output.Status != OrderOpen {
		return nativecommon.Invariantf("swap: partially filled order must stay open, got %s", output.Status)
	}
	return nil
}

// validateTransfer checks a pure custody change: input and output orders pair
// up with every trade-relevant field byte-identical.
func validateTransfer(app charm.App, tx *charm.Transaction) error {
	inputs, err := orderCharms(app, tx.InputCharms())
	if err != nil {
		return err
	}
	outputs, err := orderCharms(app, tx.Outs)
	if err != nil {
		return err
	}
	if len(inputs) != len(outputs) {
		return nativecommon.Countf("swap: transfer pairs %d inputs with %d outputs", len(inputs), len(outputs))
	}
	for i := range inputs {
		in, out := &inputs[i], &outputs[i]
		switch {
		case in.OfferAppID != out.OfferAppID:
			return nativecommon.Invariantf("swap: transfer mutates offer asset of order %d", i)
		case in.OfferAmount != out.OfferAmount:
			return nativecommon.Invariantf("swap: transfer mutates offer amount of order %d", i)
		case in.WantAppID != out.WantAppID:
			return nativecommon.Invariantf("swap: transfer mutates want asset of order %d", i)
		case in.WantAmount != out.WantAmount:
			return nativecommon.Invariantf("swap: transfer mutates want amount of order %d", i)
		case in.Status != out.Status:
			return nativecommon.Invariantf("swap: transfer mutates status of order %d", i)
		case in.FilledAmount != out.FilledAmount:
			return nativecommon.Invariantf("swap: transfer mutates filled amount of order %d", i)
		}
	}
	return nil
}
