package charm

import (
	"bytes"
	"sort"
)

// Charms is the set of records attached to a single transaction input or
// output, keyed by the application identity each record belongs to.
type Charms map[AppKey]Data

// Clone returns a shallow copy of the charm set. Data payloads are immutable
// so sharing them is safe.
func (c Charms) Clone() Charms {
	if c == nil {
		return nil
	}
	clone := make(Charms, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

// Input pairs a spent UTXO reference with the charms that were attached to it.
type Input struct {
	UtxoID UtxoID
	Charms Charms
}

// Transaction is the read-only structure a validator inspects: ordered inputs,
// each a spent output reference with attached charms, and ordered outputs,
// each a fresh charm set. Validators never mutate a Transaction; they re-derive
// all correctness from its input and output sets on every invocation.
type Transaction struct {
	Ins  []Input
	Outs []Charms
}

// InputCharms returns the charm sets attached to the transaction inputs, in
// input order.
func (tx *Transaction) InputCharms() []Charms {
	sets := make([]Charms, len(tx.Ins))
	for i, in := range tx.Ins {
		sets[i] = in.Charms
	}
	return sets
}

// Spends reports whether the transaction consumes the given UTXO.
func (tx *Transaction) Spends(id UtxoID) bool {
	for _, in := range tx.Ins {
		if in.UtxoID == id {
			return true
		}
	}
	return false
}

// AppKeys returns every distinct application identity attached anywhere in the
// transaction, in first-appearance order over inputs then outputs. Keys within
// a single charm set are visited in sorted order so the result is
// deterministic.
func (tx *Transaction) AppKeys() []AppKey {
	seen := make(map[AppKey]struct{})
	keys := make([]AppKey, 0)
	collect := func(set Charms) {
		local := make([]AppKey, 0, len(set))
		for k := range set {
			local = append(local, k)
		}
		sort.Slice(local, func(i, j int) bool {
			if local[i].Tag != local[j].Tag {
				return local[i].Tag < local[j].Tag
			}
			if c := bytes.Compare(local[i].Identity[:], local[j].Identity[:]); c != 0 {
				return c < 0
			}
			return local[i].VK < local[j].VK
		})
		for _, k := range local {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	for _, in := range tx.Ins {
		collect(in.Charms)
	}
	for _, out := range tx.Outs {
		collect(out)
	}
	return keys
}

// CharmValues extracts the payloads bound to one application identity across
// the supplied charm sets, preserving set order and discarding records that
// belong to other identities.
func CharmValues(app App, sets []Charms) []Data {
	key := app.Key()
	values := make([]Data, 0)
	for _, set := range sets {
		if d, ok := set[key]; ok {
			values = append(values, d)
		}
	}
	return values
}
