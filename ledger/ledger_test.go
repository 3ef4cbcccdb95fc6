package ledger

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

func TestMintToAndBurnRoundTrip(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	if err := l.InitializeMint2(mint, tokenProgram, 9, authority, nil); err != nil {
		t.Fatalf("init mint: %v", err)
	}

	account := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	if err := l.CreateTokenAccount(account, mint, owner, tokenProgram); err != nil {
		t.Fatalf("create token account: %v", err)
	}

	signers := map[solana.PublicKey]bool{authority: true}
	if err := l.MintTo(mint, account, 100, signers); err != nil {
		t.Fatalf("mint to: %v", err)
	}
	m, _ := l.Mint(mint)
	if m.Supply != 100 {
		t.Fatalf("supply = %d, want 100", m.Supply)
	}

	ownerSigners := map[solana.PublicKey]bool{owner: true}
	if err := l.Burn(mint, account, 40, owner, ownerSigners); err != nil {
		t.Fatalf("burn: %v", err)
	}
	m, _ = l.Mint(mint)
	if m.Supply != 60 {
		t.Fatalf("supply after burn = %d, want 60", m.Supply)
	}
	ta, _ := l.TokenAccountByKey(account)
	if ta.Amount != 60 {
		t.Fatalf("account amount = %d, want 60", ta.Amount)
	}
}

func TestMintToRejectsWrongAuthority(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	l.InitializeMint2(mint, tokenProgram, 0, authority, nil)
	account := solana.NewWallet().PublicKey()
	l.CreateTokenAccount(account, mint, solana.NewWallet().PublicKey(), tokenProgram)

	err := l.MintTo(mint, account, 1, map[solana.PublicKey]bool{solana.NewWallet().PublicKey(): true})
	if err != ErrMissingSignature {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestTransferCheckedMovesBalance(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	l.InitializeMint2(mint, tokenProgram, 6, authority, nil)

	owner := solana.NewWallet().PublicKey()
	src := solana.NewWallet().PublicKey()
	dst := solana.NewWallet().PublicKey()
	l.CreateTokenAccount(src, mint, owner, tokenProgram)
	l.CreateTokenAccount(dst, mint, solana.NewWallet().PublicKey(), tokenProgram)
	l.MintTo(mint, src, 1000, map[solana.PublicKey]bool{authority: true})

	signers := map[solana.PublicKey]bool{owner: true}
	if err := l.TransferChecked(mint, src, dst, 400, 6, owner, signers); err != nil {
		t.Fatalf("transfer checked: %v", err)
	}
	srcAcc, _ := l.TokenAccountByKey(src)
	dstAcc, _ := l.TokenAccountByKey(dst)
	if srcAcc.Amount != 600 || dstAcc.Amount != 400 {
		t.Fatalf("unexpected balances src=%d dst=%d", srcAcc.Amount, dstAcc.Amount)
	}
}

func TestCloseAccountRequiresOwnerSignature(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	l.InitializeMint2(mint, tokenProgram, 0, authority, nil)

	owner := solana.NewWallet().PublicKey()
	account := solana.NewWallet().PublicKey()
	l.CreateTokenAccount(account, mint, owner, tokenProgram)
	l.Fund(account, 2_000_000)

	dest := solana.NewWallet().PublicKey()
	if err := l.CloseAccount(account, dest, owner, nil); err != ErrMissingSignature {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
	if err := l.CloseAccount(account, dest, owner, map[solana.PublicKey]bool{owner: true}); err != nil {
		t.Fatalf("close account: %v", err)
	}
	if l.Lamports(dest) != 2_000_000 {
		t.Fatalf("destination lamports = %d, want 2000000", l.Lamports(dest))
	}
	if _, ok := l.TokenAccountByKey(account); ok {
		t.Fatalf("account should no longer exist after close")
	}
}

func TestRentGrowsWithSize(t *testing.T) {
	if Rent(82) >= Rent(200) {
		t.Fatalf("rent should increase with account size")
	}
}

func TestMultisigRequiresMOfN(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	mintAuthority := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	l.InitializeMint2(mint, tokenProgram, 6, mintAuthority, nil)

	s1, s2, s3 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	ms := solana.NewWallet().PublicKey()
	if err := l.CreateMultisig(ms, 2, []solana.PublicKey{s1, s2, s3}); err != nil {
		t.Fatalf("create multisig: %v", err)
	}

	account := solana.NewWallet().PublicKey()
	l.CreateTokenAccount(account, mint, ms, tokenProgram)
	l.MintTo(mint, account, 100, map[solana.PublicKey]bool{mintAuthority: true})

	if err := l.Burn(mint, account, 10, ms, map[solana.PublicKey]bool{s1: true}); err != ErrMissingSignature {
		t.Fatalf("expected ErrMissingSignature with only 1 of 2 required co-signers, got %v", err)
	}
	if err := l.Burn(mint, account, 10, ms, map[solana.PublicKey]bool{s1: true, s3: true}); err != nil {
		t.Fatalf("burn with 2 of 3 co-signers: %v", err)
	}
}

func TestEnsureRentExemptTopsUpShortfall(t *testing.T) {
	l := New()
	payer := solana.NewWallet().PublicKey()
	target := solana.NewWallet().PublicKey()
	l.Fund(payer, Rent(300))

	if err := l.EnsureRentExempt(target, 200, payer, map[solana.PublicKey]bool{payer: true}); err != nil {
		t.Fatalf("ensure rent exempt: %v", err)
	}
	if l.Lamports(target) != Rent(200) {
		t.Fatalf("target lamports = %d, want %d", l.Lamports(target), Rent(200))
	}
	if err := l.EnsureRentExempt(target, 200, payer, map[solana.PublicKey]bool{payer: true}); err != nil {
		t.Fatalf("second ensure rent exempt should be a no-op, got %v", err)
	}
}
