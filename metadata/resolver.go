package metadata

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/twerr"
)

// ErrInvalidAccountData is the generic runtime failure surfaced unchanged
// (not one of the program's own numbered ordinals) for the "pointer
// targets a T2 mint" and similar shape-mismatch cases.
var ErrInvalidAccountData = ledgerInvalidAccountDataSentinel{}

type ledgerInvalidAccountDataSentinel struct{}

func (ledgerInvalidAccountDataSentinel) Error() string { return "metadata: invalid account data" }

// Resolve follows U's metadata pointer chain and returns a normalized
// Record, viewed through viewingMint (the wrapped mint a sync will write
// into). t1Program/t2Program identify which token program owns U.
func Resolve(
	l *ledger.Ledger,
	unwrappedMint solana.PublicKey,
	t1Program, t2Program solana.PublicKey,
	sourceMetadata, ownerProgram *solana.PublicKey,
	viewingMint solana.PublicKey,
) (Record, error) {
	m, ok := l.Mint(unwrappedMint)
	if !ok {
		return Record{}, ledger.ErrAccountNotFound
	}

	switch m.TokenProgram {
	case t1Program:
		return resolveFromMetaplex(l, unwrappedMint, sourceMetadata, viewingMint)
	case t2Program:
		return resolveFromToken2022(l, m, unwrappedMint, t2Program, sourceMetadata, ownerProgram, viewingMint)
	default:
		return Record{}, ErrInvalidAccountData
	}
}

func resolveFromMetaplex(l *ledger.Ledger, unwrappedMint solana.PublicKey, sourceMetadata *solana.PublicKey, viewingMint solana.PublicKey) (Record, error) {
	if sourceMetadata == nil {
		return Record{}, twerr.New(twerr.MetaplexMetadataMismatch, "T1 source requires a source-metadata account")
	}
	expectedPDA, _, err := addr.MetaplexMetadataPDA(unwrappedMint)
	if err != nil {
		return Record{}, err
	}
	if !sourceMetadata.Equals(expectedPDA) {
		return Record{}, twerr.New(twerr.MetaplexMetadataMismatch, "source-metadata does not match the derived Metaplex PDA")
	}
	if l.Owner(*sourceMetadata) != addr.MetaplexProgramID {
		return Record{}, twerr.New(twerr.MetaplexMetadataMismatch, "source-metadata is not owned by the Metaplex program")
	}
	mp, ok := l.MetaplexAccount(*sourceMetadata)
	if !ok {
		return Record{}, twerr.New(twerr.UnwrappedMintHasNoMetadata, "no Metaplex metadata found for the unwrapped mint")
	}
	return FromMetaplex(mp, viewingMint), nil
}

func resolveFromToken2022(
	l *ledger.Ledger,
	m *ledger.Mint,
	unwrappedMint, t2Program solana.PublicKey,
	sourceMetadata, ownerProgram *solana.PublicKey,
	viewingMint solana.PublicKey,
) (Record, error) {
	if !m.Extensions.Has(ledger.ExtMetadataPointer) {
		return Record{}, twerr.New(twerr.MetadataPointerMissing, "unwrapped mint has no metadata pointer extension")
	}
	if !m.MetadataPointerSet || m.MetadataPointer == nil {
		return Record{}, twerr.New(twerr.MetadataPointerUnset, "metadata pointer extension has no target address")
	}
	target := *m.MetadataPointer

	if target.Equals(unwrappedMint) {
		if m.TokenMetadata == nil {
			return Record{}, twerr.New(twerr.UnwrappedMintHasNoMetadata, "self-pointing mint carries no token-metadata")
		}
		return recordFromTokenMetadataRecord(m.TokenMetadata, viewingMint), nil
	}

	if sourceMetadata == nil || !sourceMetadata.Equals(target) {
		return Record{}, twerr.New(twerr.MetadataPointerMismatch, "source-metadata does not match the pointer's target")
	}

	owner := l.Owner(target)
	switch {
	case owner == addr.MetaplexProgramID:
		mp, ok := l.MetaplexAccount(target)
		if !ok {
			return Record{}, twerr.New(twerr.UnwrappedMintHasNoMetadata, "pointer targets a missing Metaplex account")
		}
		return FromMetaplex(mp, viewingMint), nil
	case owner == t2Program:
		if targetMint, ok := l.Mint(target); ok && targetMint.TokenProgram == t2Program {
			return Record{}, ErrInvalidAccountData
		}
		return Record{}, ErrInvalidAccountData
	default:
		if ownerProgram == nil || !ownerProgram.Equals(owner) {
			return Record{}, ErrInvalidAccountData
		}
		data, err := l.Emit(owner, target)
		if err != nil {
			if err == ledger.ErrNoReturnData {
				return Record{}, twerr.New(twerr.ExternalProgramReturnedNoData, "")
			}
			return Record{}, err
		}
		rec, err := decodeTokenMetadata(data, viewingMint)
		if err != nil {
			return Record{}, err
		}
		return rec, nil
	}
}

func recordFromTokenMetadataRecord(tm *ledger.TokenMetadataRecord, viewingMint solana.PublicKey) Record {
	r := Record{
		UpdateAuthority: tm.UpdateAuthority,
		Mint:            viewingMint,
		Name:            tm.Name,
		Symbol:          tm.Symbol,
		URI:             tm.URI,
	}
	for _, key := range tm.AdditionalOrder {
		r.set(key, tm.AdditionalMetadata[key])
	}
	return r
}
