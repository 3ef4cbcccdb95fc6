package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/twerr"
)

// UnwrapAccounts is the positional account list for Unwrap.
type UnwrapAccounts struct {
	Escrow solana.PublicKey
	RecipientUnwrappedAccount solana.PublicKey
	MintAuthority solana.PublicKey
	UnwrappedMint solana.PublicKey
	UnwrappedTokenProgram solana.PublicKey
	WrappedTokenProgram solana.PublicKey
	WrappedSourceAccount solana.PublicKey
	WrappedMint solana.PublicKey
	TransferAuthority solana.PublicKey
	TransferHookAccounts []solana.PublicKey
}

// Unwrap burns amount wrapped units from the caller's wrapped account and
// releases amount unwrapped units from escrow to the recipient. The burn
// is issued before the escrow release so a
// transfer-hook failure on the release CPI can never leave the supply
// invariant violated.
func (p *Program) Unwrap(l *ledger.Ledger, accs UnwrapAccounts, amount uint64, signers map[solana.PublicKey]bool) error {
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

	if err := l.Burn(w, accs.WrappedSourceAccount, amount, accs.TransferAuthority, signers); err != nil {
		return err
	}

	authoritySigners := map[solana.PublicKey]bool{a: true}
	if err := l.TransferChecked(accs.UnwrappedMint, accs.Escrow, accs.RecipientUnwrappedAccount, amount, u.Decimals, a, authoritySigners); err != nil {
		return err
	}

	p.log("unwrap",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("wrapped_mint", w),
		logging.Pubkey("escrow", accs.Escrow),
	)
	return nil
}
