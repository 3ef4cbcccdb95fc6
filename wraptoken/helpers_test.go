package wraptoken

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"tokenwrap.dev/program/customizer"
	"tokenwrap.dev/program/ledger"
)

// testDeployment bundles a Program plus the two token-program ids it
// bridges between, matching one (U, P_w) deployment's worth of fixtures.
type testDeployment struct {
	l  *ledger.Ledger
	p  *Program
	t1 solana.PublicKey
	t2 solana.PublicKey
}

func newTestDeployment(t *testing.T, variant customizer.Variant) *testDeployment {
	t.Helper()
	c, err := customizer.For(variant)
	if err != nil {
		t.Fatalf("customizer.For(%s): %v", variant, err)
	}
	t1 := solana.NewWallet().PublicKey()
	t2 := solana.NewWallet().PublicKey()
	return &testDeployment{
		l:  ledger.New(),
		p:  New(solana.NewWallet().PublicKey(), t1, t2, c, zap.NewNop()),
		t1: t1,
		t2: t2,
	}
}

// createUnwrappedMint initializes U directly on the ledger (standing in
// for a pre-existing mint this program does not control). It does not fund
// any account; fundForCreateMint covers CreateMint's rent checks on W and B.
func (d *testDeployment) createUnwrappedMint(t *testing.T, tokenProgram solana.PublicKey, decimals uint8, freezeAuthority *solana.PublicKey) solana.PublicKey {
	t.Helper()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	if err := d.l.InitializeMint2(mint, tokenProgram, decimals, authority, freezeAuthority); err != nil {
		t.Fatalf("initialize unwrapped mint: %v", err)
	}
	return mint
}

func (d *testDeployment) fundForCreateMint(t *testing.T, w, b solana.PublicKey) {
	t.Helper()
	d.l.Fund(w, ledger.Rent(10_000))
	d.l.Fund(b, ledger.Rent(1_000))
}
