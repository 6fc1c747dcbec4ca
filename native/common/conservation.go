package common

import "liquidnation/charm"

// TokenConservation enforces the conservation law for one token identity:
// the summed output amount must not exceed the summed input amount, so no
// transaction can mint value. It is the standalone rule for plain token
// transfers and a side constraint inside order and escrow creation.
func TokenConservation(app charm.App, tx *charm.Transaction) error {
	inputSum, err := charm.SumTokenAmount(app, tx.InputCharms())
	if err != nil {
		return Structuralf("token inputs for %s: %v", app, err)
	}
	outputSum, err := charm.SumTokenAmount(app, tx.Outs)
	if err != nil {
		return Structuralf("token outputs for %s: %v", app, err)
	}
	if outputSum > inputSum {
		return Conservationf("token outputs %d exceed inputs %d for %s", outputSum, inputSum, app)
	}
	return nil
}
