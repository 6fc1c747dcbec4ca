package charm

import (
	"math"
	"testing"
)

func testApp(tag byte, seed string) App {
	return App{Tag: tag, Identity: Hash(seed), VK: []byte("vk")}
}

func TestCharmValuesFiltersByIdentity(t *testing.T) {
	mine := testApp(TagNFT, "mine")
	other := testApp(TagNFT, "other")

	sets := []Charms{
		{mine.Key(): MustData("a"), other.Key(): MustData("x")},
		{other.Key(): MustData("y")},
		{mine.Key(): MustData("b")},
	}

	values := CharmValues(mine, sets)
	if len(values) != 2 {
		t.Fatalf("expected 2 charms, got %d", len(values))
	}
	var first, second string
	if err := values[0].Value(&first); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := values[1].Value(&second); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if first != "a" || second != "b" {
		t.Fatalf("extraction order broken: %s %s", first, second)
	}
}

func TestTransactionSpends(t *testing.T) {
	spent := UtxoID{TxID: Hash("funding"), Index: 1}
	tx := &Transaction{Ins: []Input{{UtxoID: spent}}}
	if !tx.Spends(spent) {
		t.Fatalf("transaction must report its own input as spent")
	}
	if tx.Spends(UtxoID{TxID: Hash("funding"), Index: 2}) {
		t.Fatalf("different index must not match")
	}
}

func TestAppKeysDeduplicates(t *testing.T) {
	app := testApp(TagNFT, "app")
	token := testApp(TagToken, "token")
	tx := &Transaction{
		Ins: []Input{
			{Charms: Charms{app.Key(): MustData("in"), token.Key(): MustData(uint64(1))}},
		},
		Outs: []Charms{
			{app.Key(): MustData("out")},
			{token.Key(): MustData(uint64(1))},
		},
	}
	keys := tx.AppKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 distinct identities, got %d", len(keys))
	}
}

func TestSumTokenAmount(t *testing.T) {
	token := testApp(TagToken, "token")
	sets := []Charms{
		{token.Key(): MustData(uint64(300))},
		{token.Key(): MustData(uint64(700))},
		{},
	}
	sum, err := SumTokenAmount(token, sets)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 1000 {
		t.Fatalf("sum mismatch: %d", sum)
	}
}

func TestSumTokenAmountRejectsNonNumeric(t *testing.T) {
	token := testApp(TagToken, "token")
	sets := []Charms{{token.Key(): MustData("not a number")}}
	if _, err := SumTokenAmount(token, sets); err == nil {
		t.Fatalf("expected error for non-numeric token charm")
	}
}

func TestSumTokenAmountOverflow(t *testing.T) {
	token := testApp(TagToken, "token")
	sets := []Charms{
		{token.Key(): MustData(uint64(math.MaxUint64))},
		{token.Key(): MustData(uint64(1))},
	}
	if _, err := SumTokenAmount(token, sets); err == nil {
		t.Fatalf("expected overflow error")
	}
}
