package ledger

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
)

// Creator mirrors Metaplex's Creator struct.
type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

// MetaplexMetadata models a Metaplex token-metadata-program PDA account
// (the `key`/update_authority/mint/Data-V2 layout that off-chain
// token_metadata.go documents).
type MetaplexMetadata struct {
	UpdateAuthority solana.PublicKey
	Mint            solana.PublicKey

	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator

	PrimarySaleHappened bool
	IsMutable            bool
	EditionNonce         *uint8
	TokenStandard        *uint8
	Collection           *MetaplexCollection
	Uses                 *MetaplexUses
	CollectionDetails    *string
	ProgrammableConfig   *string
}

type MetaplexCollection struct {
	Verified bool
	Key      solana.PublicKey
}

type MetaplexUses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

func (l *Ledger) MetaplexAccount(pubkey solana.PublicKey) (*MetaplexMetadata, bool) {
	m, ok := l.metaplex[pubkey]
	return m, ok
}

// CreateMetadataAccountV3 simulates the Metaplex CPI this program issues
// when a PDA for W does not yet exist. Signed by authority (A).
func (l *Ledger) CreateMetadataAccountV3(pda, mint, authority solana.PublicKey, data MetaplexMetadata, signers map[solana.PublicKey]bool) error {
	if _, exists := l.metaplex[pda]; exists {
		return ErrAlreadyExists
	}
	if !signers[authority] {
		return ErrMissingSignature
	}
	data.Mint = mint
	data.UpdateAuthority = authority
	l.metaplex[pda] = &data
	l.setOwner(pda, addr.MetaplexProgramID)
	return nil
}

// UpdateMetadataAccountV2 overwrites an existing PDA's data wholesale
// (absent fields null out present ones: this is a "replace, don't
// merge" rule), signed by the current update authority.
func (l *Ledger) UpdateMetadataAccountV2(pda solana.PublicKey, authority solana.PublicKey, data MetaplexMetadata, signers map[solana.PublicKey]bool) error {
	existing, ok := l.metaplex[pda]
	if !ok {
		return ErrAccountNotFound
	}
	if existing.UpdateAuthority != authority || !signers[authority] {
		return ErrMissingSignature
	}
	mint := existing.Mint
	data.Mint = mint
	data.UpdateAuthority = authority
	l.metaplex[pda] = &data
	return nil
}
