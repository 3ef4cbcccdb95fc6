package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/state"
	"tokenwrap.dev/program/twerr"
)

// CreateMintAccounts is the positional account list for CreateMint.
type CreateMintAccounts struct {
	WrappedMint solana.PublicKey
	Backpointer solana.PublicKey
	UnwrappedMint solana.PublicKey
	WrappedTokenProgram solana.PublicKey
}

// CreateMint allocates and initializes the wrapped mint and backpointer for
// (UnwrappedMint, WrappedTokenProgram).
func (p *Program) CreateMint(l *ledger.Ledger, accs CreateMintAccounts, idempotent bool) error {
	w, _, err := addr.WrappedMint(accs.UnwrappedMint, accs.WrappedTokenProgram, p.ID)
	if err != nil {
		return err
	}
	if !accs.WrappedMint.Equals(w) {
		return twerr.New(twerr.WrappedMintMismatch, "wrapped mint account does not match the derived address")
	}
	b, _, err := addr.Backpointer(w, p.ID)
	if err != nil {
		return err
	}
	if !accs.Backpointer.Equals(b) {
		return twerr.New(twerr.BackpointerMismatch, "backpointer account does not match the derived address")
	}

	if l.DataLen(w) > 0 || l.DataLen(b) > 0 {
		if !idempotent {
			return ledger.ErrAlreadyExists
		}
		if l.Owner(w) != accs.WrappedTokenProgram {
			return twerr.New(twerr.InvalidWrappedMintOwner, "")
		}
		if l.Owner(b) != p.ID {
			return twerr.New(twerr.InvalidBackpointerOwner, "")
		}
		p.log("create_mint idempotent no-op", logging.Pubkey("wrapped_mint", w))
		return nil
	}

	if err := l.RequireRentExempt(w, int(p.Customizer.TotalSpace())); err != nil {
		return err
	}
	if err := l.RequireRentExempt(b, state.BackpointerLen); err != nil {
		return err
	}

	a, _, err := addr.MintAuthority(w, p.ID)
	if err != nil {
		return err
	}

	if err := l.AllocateMint(w, accs.WrappedTokenProgram); err != nil {
		return err
	}
	if err := p.Customizer.PreInitialize(l, w, a); err != nil {
		return err
	}

	u, ok := l.Mint(accs.UnwrappedMint)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	decimals := p.Customizer.Decimals(u.Decimals)
	freezeAuthority := p.Customizer.FreezeAuthority(u.FreezeAuthority)
	if err := l.InitializeMint2(w, accs.WrappedTokenProgram, decimals, a, freezeAuthority); err != nil {
		return err
	}

	authoritySigners := map[solana.PublicKey]bool{a: true}
	if err := p.Customizer.PostInitialize(l, w, a, authoritySigners); err != nil {
		return err
	}

	if err := l.Allocate(b, uint64(state.BackpointerLen)); err != nil {
		return err
	}
	l.WriteRecord(b, p.ID, state.Backpointer{UnwrappedMint: accs.UnwrappedMint}.Marshal())

	p.log("create_mint",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("wrapped_mint", w),
		logging.Pubkey("mint_authority", a),
		zap.Uint8("decimals", decimals),
		zap.String("customizer", p.Customizer.Variant().String()),
	)
	return nil
}
