package charm

import (
	"fmt"
	"math"
)

// SumTokenAmount sums the fungible amounts attached under the given token
// application across the supplied charm sets. A payload under a token key that
// does not decode as an amount is an error, as is arithmetic overflow.
func SumTokenAmount(app App, sets []Charms) (uint64, error) {
	var total uint64
	for _, d := range CharmValues(app, sets) {
		var amount uint64
		if err := d.Value(&amount); err != nil {
			return 0, fmt.Errorf("charm: token charm for %s is not an amount: %w", app, err)
		}
		sum, err := addUint64(total, amount)
		if err != nil {
			return 0, fmt.Errorf("charm: token sum for %s: %w", app, err)
		}
		total = sum
	}
	return total, nil
}

func addUint64(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, fmt.Errorf("amount overflow adding %d and %d", a, b)
	}
	return a + b, nil
}
