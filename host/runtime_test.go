package host

import (
	"context"
	"errors"
	"testing"

	"liquidnation/charm"
	"liquidnation/native/escrow"
	"liquidnation/native/swap"
)

var (
	swapVK   = []byte("swap-vk")
	escrowVK = []byte("escrow-vk")
)

func newRuntime() *Runtime {
	r := NewRuntime()
	r.Register(swapVK, swap.Validate)
	r.Register(escrowVK, escrow.Validate)
	return r
}

func TestVerifyTransactionAllIdentitiesMustPass(t *testing.T) {
	r := newRuntime()

	tokenA := charm.App{Tag: charm.TagToken, Identity: charm.Hash("asset-a"), VK: swapVK}
	tokenB := charm.App{Tag: charm.TagToken, Identity: charm.Hash("asset-b"), VK: escrowVK}
	tx := &charm.Transaction{
		Ins: []charm.Input{{
			Charms: charm.Charms{
				tokenA.Key(): charm.MustData(uint64(100)),
				tokenB.Key(): charm.MustData(uint64(50)),
			},
		}},
		Outs: []charm.Charms{{
			tokenA.Key(): charm.MustData(uint64(100)),
			tokenB.Key(): charm.MustData(uint64(50)),
		}},
	}
	if err := r.VerifyTransaction(context.Background(), tx, nil); err != nil {
		t.Fatalf("conserved transfer across two identities rejected: %v", err)
	}

	// Inflating one identity fails the whole transaction.
	tx.Outs[0][tokenB.Key()] = charm.MustData(uint64(51))
	if err := r.VerifyTransaction(context.Background(), tx, nil); err == nil {
		t.Fatalf("inflating transfer accepted")
	}
}

func TestVerifyTransactionRejectsUnknownContract(t *testing.T) {
	r := newRuntime()
	unknown := charm.App{Tag: charm.TagToken, Identity: charm.Hash("x"), VK: []byte("unregistered")}
	tx := &charm.Transaction{
		Outs: []charm.Charms{{unknown.Key(): charm.MustData(uint64(1))}},
	}
	err := r.VerifyTransaction(context.Background(), tx, nil)
	if !errors.Is(err, ErrUnknownContract) {
		t.Fatalf("expected ErrUnknownContract, got %v", err)
	}
}

func TestVerifyTransactionRoutesInputs(t *testing.T) {
	r := newRuntime()

	ref := charm.UtxoID{TxID: charm.Hash("funding")}.String()
	app := charm.App{Tag: charm.TagNFT, Identity: charm.Hash(ref), VK: swapVK}
	utxo, err := charm.ParseUtxoID(ref)
	if err != nil {
		t.Fatalf("parse ref: %v", err)
	}
	order := swap.SwapOrder{
		MakerPubKey: []byte("maker"),
		OfferAppID:  charm.Hash("asset-a"),
		OfferAmount: 1000,
		WantAppID:   charm.Hash("asset-b"),
		WantAmount:  500,
		Status:      swap.OrderOpen,
	}
	tx := &charm.Transaction{
		Ins:  []charm.Input{{UtxoID: utxo}},
		Outs: []charm.Charms{{app.Key(): charm.MustData(order)}},
	}
	inputs := map[charm.AppKey]Inputs{
		app.Key(): {Public: charm.MustData("create"), Witness: charm.MustData(ref)},
	}
	if err := r.VerifyTransaction(context.Background(), tx, inputs); err != nil {
		t.Fatalf("order creation via runtime rejected: %v", err)
	}

	// Without the creation inputs the same transaction decodes as a
	// transfer and fails the pairing rule.
	if err := r.VerifyTransaction(context.Background(), tx, nil); err == nil {
		t.Fatalf("creation without witness accepted")
	}
}

func TestVerifyTransactionHonorsContext(t *testing.T) {
	r := newRuntime()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	token := charm.App{Tag: charm.TagToken, Identity: charm.Hash("a"), VK: swapVK}
	tx := &charm.Transaction{
		Ins: []charm.Input{{Charms: charm.Charms{token.Key(): charm.MustData(uint64(1))}}},
	}
	if err := r.VerifyTransaction(ctx, tx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
