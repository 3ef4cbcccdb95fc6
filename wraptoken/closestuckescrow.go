package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/twerr"
)

// CloseStuckEscrowAccounts is the positional account list for
// CloseStuckEscrow.
type CloseStuckEscrowAccounts struct {
	UnwrappedMint solana.PublicKey
	WrappedTokenProgram solana.PublicKey
	WrappedMint solana.PublicKey
	MintAuthority solana.PublicKey
	Escrow solana.PublicKey
	Destination solana.PublicKey
}

// CloseStuckEscrow closes an escrow whose creation-time extension layout no
// longer matches UnwrappedMint's current extension set, // Anyone may call this; the preconditions below are what gate it, not a
// signer check.
func (p *Program) CloseStuckEscrow(l *ledger.Ledger, accs CloseStuckEscrowAccounts) error {
	u, ok := l.Mint(accs.UnwrappedMint)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if u.TokenProgram != p.T2ProgramID {
		return ledger.ErrIncorrectProgramID
	}

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

	expectedEscrow, _, err := addr.Escrow(a, accs.UnwrappedMint, p.T2ProgramID)
	if err != nil {
		return err
	}
	if !accs.Escrow.Equals(expectedEscrow) {
		return twerr.New(twerr.EscrowMismatch, "")
	}

	escrow, ok := l.TokenAccountByKey(accs.Escrow)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if !escrow.Owner.Equals(a) {
		return twerr.New(twerr.EscrowOwnerMismatch, "")
	}
	if escrow.State == ledger.AccountFrozen {
		return ledger.ErrInvalidAccountData
	}
	if escrow.Amount != 0 {
		return ledger.ErrInvalidAccountData
	}
	if escrow.ExtensionsAtCreation == u.Extensions.AccountLevelExtensions() {
		return twerr.New(twerr.EscrowInGoodState, "escrow's extension layout already matches the unwrapped mint")
	}

	signers := map[solana.PublicKey]bool{a: true}
	if err := l.CloseAccount(accs.Escrow, accs.Destination, a, signers); err != nil {
		return err
	}

	p.log("close_stuck_escrow",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("escrow", accs.Escrow),
		logging.Pubkey("destination", accs.Destination),
	)
	return nil
}
