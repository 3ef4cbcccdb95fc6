package wraptoken

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/customizer"
	"tokenwrap.dev/program/instruction"
	"tokenwrap.dev/program/ledger"
)

func TestDispatchRoutesCreateMint(t *testing.T) {
	d := newTestDeployment(t, customizer.NoExtensions)
	u := d.createUnwrappedMint(t, d.t1, 9, nil)
	w, _, _ := addr.WrappedMint(u, d.t2, d.p.ID)
	b, _, _ := addr.Backpointer(w, d.p.ID)
	d.fundForCreateMint(t, w, b)

	data, err := instruction.Pack(instruction.CreateMint{Idempotent: false})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	accounts := []solana.PublicKey{w, b, u, d.t2}
	if err := d.p.Dispatch(d.l, data, accounts, nil); err != nil {
		t.Fatalf("dispatch create mint: %v", err)
	}
	if _, ok := d.l.Mint(w); !ok {
		t.Fatalf("dispatch did not create the wrapped mint")
	}
}

func TestDispatchRejectsShortAccountListPerInstruction(t *testing.T) {
	d := newTestDeployment(t, customizer.NoExtensions)

	cases := []struct {
		name string
		ix   instruction.Instruction
	}{
		{"CreateMint", instruction.CreateMint{Idempotent: false}},
		{"Wrap", instruction.Wrap{Amount: 1}},
		{"Unwrap", instruction.Unwrap{Amount: 1}},
		{"CloseStuckEscrow", instruction.CloseStuckEscrow{}},
		{"SyncMetadataToToken2022", instruction.SyncMetadataToToken2022{}},
		{"SyncMetadataToSplToken", instruction.SyncMetadataToSplToken{}},
		{"SetCanonicalPointer", instruction.SetCanonicalPointer{TargetProgramID: solana.NewWallet().PublicKey()}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := instruction.Pack(c.ix)
			if err != nil {
				t.Fatalf("pack: %v", err)
			}
			if err := d.p.Dispatch(d.l, data, nil, nil); err != ledger.ErrNotEnoughAccountKeys {
				t.Fatalf("expected ErrNotEnoughAccountKeys, got %v", err)
			}
		})
	}
}

func TestDispatchRejectsUnknownTag(t *testing.T) {
	d := newTestDeployment(t, customizer.NoExtensions)
	if err := d.p.Dispatch(d.l, []byte{0xff}, nil, nil); err == nil {
		t.Fatalf("expected an error for an unknown instruction tag")
	}
}

func TestDispatchRoutesSetCanonicalPointer(t *testing.T) {
	d := newTestDeployment(t, customizer.NoExtensions)
	u := d.createUnwrappedMint(t, d.t1, 9, nil)
	uMint, _ := d.l.Mint(u)
	c, _, _ := addr.CanonicalPointer(u, d.p.ID)
	d.l.Fund(c, ledger.Rent(32))

	target := solana.NewWallet().PublicKey()
	data, err := instruction.Pack(instruction.SetCanonicalPointer{TargetProgramID: target})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	signers := map[solana.PublicKey]bool{*uMint.MintAuthority: true}
	accounts := []solana.PublicKey{u, c}
	if err := d.p.Dispatch(d.l, data, accounts, signers); err != nil {
		t.Fatalf("dispatch set canonical pointer: %v", err)
	}
	if _, ok := d.l.ReadRecord(c); !ok {
		t.Fatalf("dispatch did not write the canonical pointer record")
	}
}
