package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/internal/logging"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/metadata"
	"tokenwrap.dev/program/twerr"
)

// tokenMetadataOverhead approximates the fixed portion of a Token-2022
// TokenMetadata TLV entry (discriminator + length prefix) on top of the
// variable payload EncodeTokenMetadata produces, for rent-exemption sizing.
const tokenMetadataOverhead = 40

// SyncToToken2022Accounts is the positional account list for
// SyncMetadataToToken2022.
type SyncToToken2022Accounts struct {
	WrappedMint solana.PublicKey
	MintAuthority solana.PublicKey
	UnwrappedMint solana.PublicKey
	SourceMetadata *solana.PublicKey
	OwnerProgram *solana.PublicKey
}

// SyncMetadataToToken2022 resolves UnwrappedMint's metadata and
// initializes or updates WrappedMint's token-metadata extension to match,
// WrappedMint's update authority is always set to the
// mint authority A so later syncs remain signable by this program alone.
func (p *Program) SyncMetadataToToken2022(l *ledger.Ledger, accs SyncToToken2022Accounts) error {
	w, _, err := addr.WrappedMint(accs.UnwrappedMint, p.T2ProgramID, p.ID)
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
	if l.Owner(w) != p.T2ProgramID {
		return twerr.New(twerr.InvalidWrappedMintOwner, "")
	}

	rec, err := metadata.Resolve(l, accs.UnwrappedMint, p.T1ProgramID, p.T2ProgramID, accs.SourceMetadata, accs.OwnerProgram, w)
	if err != nil {
		return err
	}

	signers := map[solana.PublicKey]bool{a: true}
	newPayload := metadata.EncodeTokenMetadata(rec, w)
	if err := l.EnsureRentExempt(w, len(newPayload)+tokenMetadataOverhead, a, signers); err != nil {
		return err
	}

	wm, ok := l.Mint(w)
	if !ok {
		return ledger.ErrAccountNotFound
	}

	if wm.TokenMetadata == nil {
		if err := l.TokenMetadataInitialize(w, a, rec.Name, rec.Symbol, rec.URI, signers); err != nil {
			return err
		}
	} else {
		if err := l.TokenMetadataUpdateField(w, "name", rec.Name, signers); err != nil {
			return err
		}
		if err := l.TokenMetadataUpdateField(w, "symbol", rec.Symbol, signers); err != nil {
			return err
		}
		if err := l.TokenMetadataUpdateField(w, "uri", rec.URI, signers); err != nil {
			return err
		}
	}

	for _, key := range rec.AdditionalOrder {
		if err := l.TokenMetadataUpdateField(w, key, rec.AdditionalFields[key], signers); err != nil {
			return err
		}
	}

	wm, _ = l.Mint(w)
	staleKeys := make([]string, 0, len(wm.TokenMetadata.AdditionalOrder))
	for _, key := range wm.TokenMetadata.AdditionalOrder {
		if _, present := rec.AdditionalFields[key]; !present {
			staleKeys = append(staleKeys, key)
		}
	}
	for _, key := range staleKeys {
		if err := l.TokenMetadataRemoveKey(w, key, signers); err != nil {
			return err
		}
	}

	p.log("sync_metadata_to_token2022",
		logging.Pubkey("unwrapped_mint", accs.UnwrappedMint),
		logging.Pubkey("wrapped_mint", w),
	)
	return nil
}
