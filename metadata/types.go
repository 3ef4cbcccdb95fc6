// Package metadata implements the program's metadata resolution pipeline:
// following the metadata pointer chain (self / Metaplex PDA / third-party
// program) to a normalized record, and the two-way normalization between
// that record and Metaplex's DataV2 layout.
package metadata

import solana "github.com/gagliardetto/solana-go"

// Record is the normalized metadata shape both sync handlers write from.
type Record struct {
	UpdateAuthority solana.PublicKey
	Mint            solana.PublicKey
	Name            string
	Symbol          string
	URI             string

	// AdditionalFields holds every optional Metaplex field (and any other
	// extension data) serialized as a JSON string under a stable key, plus
	// whatever custom keys a self-hosted token-metadata record already
	// carried. AdditionalOrder preserves insertion order for deterministic
	// UpdateField/RemoveKey sequencing.
	AdditionalFields map[string]string
	AdditionalOrder  []string
}

// Stable additional_fields keys used when normalizing FROM Metaplex.
const (
	KeySellerFeeBasisPoints = "metaplex_seller_fee_basis_points"
	KeyPrimarySaleHappened  = "metaplex_primary_sale_happened"
	KeyIsMutable            = "metaplex_is_mutable"
	KeyEditionNonce         = "metaplex_edition_nonce"
	KeyTokenStandard        = "metaplex_token_standard"
	KeyCollection           = "metaplex_collection"
	KeyUses                 = "metaplex_uses"
	KeyCollectionDetails    = "metaplex_collection_details"
	KeyProgrammableConfig   = "metaplex_programmable_config"
	KeyCreators             = "metaplex_creators"
)

func (r *Record) set(key, value string) {
	if r.AdditionalFields == nil {
		r.AdditionalFields = make(map[string]string)
	}
	if _, exists := r.AdditionalFields[key]; !exists {
		r.AdditionalOrder = append(r.AdditionalOrder, key)
	}
	r.AdditionalFields[key] = value
}
