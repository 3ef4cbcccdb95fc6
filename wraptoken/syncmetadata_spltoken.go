package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/metadata"
	"tokenwrap.dev/program/twerr"
)

// metaplexAccountApproxSize approximates a Metaplex DataV2 metadata
// account's on-chain size, for rent-exemption sizing when creating a fresh
// PDA.
const metaplexAccountApproxSize = 679

// SyncToSplTokenAccounts is the positional account list for
// SyncMetadataToSplToken.
type SyncToSplTokenAccounts struct {
	MetaplexPDA solana.PublicKey
	MintAuthority solana.PublicKey
	WrappedMint solana.PublicKey
	UnwrappedMint solana.PublicKey
	MetaplexProgram solana.PublicKey
	SourceMetadata *solana.PublicKey
	OwnerProgram *solana.PublicKey
}

// SyncMetadataToSplToken resolves UnwrappedMint's metadata, reverse
// normalizes it to Metaplex's DataV2 shape, and creates or updates
// WrappedMint's Metaplex PDA to match, Both the create
// and update CPIs set the update authority to A so subsequent syncs remain
// possible, and absent source fields null out present destination fields
// rather than merging.
func (p *Program) SyncMetadataToSplToken(l *ledger.Ledger, accs SyncToSplTokenAccounts) error {
	if l.Owner(accs.WrappedMint) == p.T2ProgramID {
		return twerr.New(twerr.NoSyncingToToken2022, "wrapped mint is owned by the Token-2022 program")
	}
	w, _, err := addr.WrappedMint(accs.UnwrappedMint, p.T1ProgramID, p.ID)
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
	pda, _, err := addr.MetaplexMetadataPDA(w)
	if err != nil {
		return err
	}
	if !accs.MetaplexPDA.Equals(pda) {
		return twerr.New(twerr.MetaplexMetadataMismatch, "")
	}
	if !accs.MetaplexProgram.Equals(addr.MetaplexProgramID) {
		return ledger.ErrInvalidAccountOwner
	}

	rec, err := metadata.Resolve(l, accs.UnwrappedMint, p.T1ProgramID, p.T2ProgramID, accs.SourceMetadata, accs.OwnerProgram, w)
	if err != nil {
		return err
	}
	mp, err := metadata.ToMetaplex(rec)
	if err != nil {
		return err
	}

	signers := map[solana.PublicKey]bool{a: true}
	if _, exists := l.MetaplexAccount(pda); !exists {
		if err := l.RequireRentExempt(pda, metaplexAccountApproxSize); err != nil {
			return err
		}
		if err := l.CreateMetadataAccountV3(pda, w, a, mp, signers); err != nil {
			return err
		}
	} else {
		if err := l.UpdateMetadataAccountV2(pda, a, mp, signers); err != nil {
			return err
		}
	}

	p.log("sync_metadata_to_spl_token",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("wrapped_mint", w),
		logging.Pubkey("metaplex_pda", pda),
	)
	return nil
}
