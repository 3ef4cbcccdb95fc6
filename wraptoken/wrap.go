package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/twerr"
)

// WrapAccounts is the positional account list for Wrap.
// TransferHookAccounts carries whatever trailing accounts a transfer-hook
// extension on UnwrappedMint needs forwarded; this simulation does not run
// a real transfer-hook program, so they are threaded through unused except
// for logging, matching the pattern of forwarding opaque remaining-accounts
// slices without interpreting them.
type WrapAccounts struct {
	RecipientWrappedAccount solana.PublicKey
	WrappedMint solana.PublicKey
	MintAuthority solana.PublicKey
	UnwrappedTokenProgram solana.PublicKey
	WrappedTokenProgram solana.PublicKey
	SourceUnwrappedAccount solana.PublicKey
	UnwrappedMint solana.PublicKey
	Escrow solana.PublicKey
	TransferAuthority solana.PublicKey
	TransferHookAccounts []solana.PublicKey
}

// Wrap moves amount unwrapped units into escrow and mints amount wrapped
// units to the recipient, The unwrapped transfer is
// issued before the wrapped mint so a transfer-hook failure on the first
// CPI can never leave the supply invariant violated.
func (p *Program) Wrap(l *ledger.Ledger, accs WrapAccounts, amount uint64, signers map[solana.PublicKey]bool) error {
	w, _, err := addr.WrappedMint(accs.UnwrappedMint, accs.WrappedTokenProgram, p.ID)
	if err != nil {
		return err
	}
	if !accs.WrappedMint.Equals(w) {
		return twerr.New(twerr.WrappedMintMismatch, "")
	}
	a, _, err := addr.MintAuthority(w, p.ID)
	if err != nil {
		return err
	}
	if !accs.MintAuthority.Equals(a) {
		return twerr.New(twerr.MintAuthorityMismatch, "")
	}
	if amount == 0 {
		return twerr.New(twerr.ZeroWrapAmount, "")
	}
	if l.Owner(w) != accs.WrappedTokenProgram {
		return twerr.New(twerr.InvalidWrappedMintOwner, "")
	}
	escrow, ok := l.TokenAccountByKey(accs.Escrow)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if !escrow.Owner.Equals(a) {
		return twerr.New(twerr.EscrowOwnerMismatch, "")
	}
	if !escrow.Mint.Equals(accs.UnwrappedMint) {
		return twerr.New(twerr.EscrowMismatch, "")
	}

	u, ok := l.Mint(accs.UnwrappedMint)
	if !ok {
		return ledger.ErrAccountNotFound
	}

	if err := l.TransferChecked(accs.UnwrappedMint, accs.SourceUnwrappedAccount, accs.Escrow, amount, u.Decimals, accs.TransferAuthority, signers); err != nil {
		return err
	}

	authoritySigners := map[solana.PublicKey]bool{a: true}
	if err := l.MintTo(w, accs.RecipientWrappedAccount, amount, authoritySigners); err != nil {
		return err
	}

	p.log("wrap",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("wrapped_mint", w),
		logging.Pubkey("escrow", accs.Escrow),
	)
	return nil
}
