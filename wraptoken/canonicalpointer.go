package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/state"
)

// SetCanonicalPointerAccounts is the positional account list for
// SetCanonicalPointer. The endorsed deployment's program id travels as
// trailing instruction payload (see instruction.SetCanonicalPointer) rather
// than as an account, since it is data to be stored, not an address to
// validate against a derivation.
type SetCanonicalPointerAccounts struct {
	UnwrappedMint solana.PublicKey
	CanonicalPointer solana.PublicKey
}

// SetCanonicalPointer lets UnwrappedMint's own mint authority declare which
// deployment of this program it endorses as canonical.
func (p *Program) SetCanonicalPointer(l *ledger.Ledger, accs SetCanonicalPointerAccounts, targetProgramID solana.PublicKey, signers map[solana.PublicKey]bool) error {
	c, _, err := addr.CanonicalPointer(accs.UnwrappedMint, p.ID)
	if err != nil {
		return err
	}
	if !accs.CanonicalPointer.Equals(c) {
		return ledger.ErrInvalidAccountData
	}

	u, ok := l.Mint(accs.UnwrappedMint)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if u.MintAuthority == nil || !signers[*u.MintAuthority] {
		return ledger.ErrMissingSignature
	}

	switch owner := l.Owner(c); {
	case owner == ledger.SystemProgramID && l.DataLen(c) == 0:
		if err := l.RequireRentExempt(c, state.CanonicalDeploymentPointerLen); err != nil {
			return err
		}
		if err := l.Allocate(c, uint64(state.CanonicalDeploymentPointerLen)); err != nil {
			return err
		}
	case owner != p.ID:
		return ledger.ErrInvalidAccountOwner
	}

	l.WriteRecord(c, p.ID, state.CanonicalDeploymentPointer{ProgramID: targetProgramID}.Marshal())

	p.log("set_canonical_pointer",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("target_program_id", targetProgramID),
	)
	return nil
}
