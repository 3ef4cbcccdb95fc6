package metadata

import (
	"encoding/json"

	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/ledger"
)

// FromMetaplex normalizes a Metaplex metadata account into a Record viewed
// through viewingMint — the wrapped mint being synced into, not the source
// mint, because sync writes land on the wrapped mint. Creators have their
// Verified flag forced false: a creator's signature cannot be reproduced
// across the sync.
func FromMetaplex(mp *ledger.MetaplexMetadata, viewingMint solana.PublicKey) Record {
	r := Record{
		UpdateAuthority: mp.UpdateAuthority,
		Mint:            viewingMint,
		Name:            mp.Name,
		Symbol:          mp.Symbol,
		URI:             mp.URI,
	}

	r.set(KeySellerFeeBasisPoints, itoa(uint64(mp.SellerFeeBasisPoints)))
	r.set(KeyPrimarySaleHappened, boolToJSON(mp.PrimarySaleHappened))
	r.set(KeyIsMutable, boolToJSON(mp.IsMutable))

	if mp.EditionNonce != nil {
		r.set(KeyEditionNonce, itoa(uint64(*mp.EditionNonce)))
	}
	if mp.TokenStandard != nil {
		r.set(KeyTokenStandard, itoa(uint64(*mp.TokenStandard)))
	}
	if mp.Collection != nil {
		r.set(KeyCollection, mustJSON(mp.Collection))
	}
	if mp.Uses != nil {
		r.set(KeyUses, mustJSON(mp.Uses))
	}
	if mp.CollectionDetails != nil {
		r.set(KeyCollectionDetails, *mp.CollectionDetails)
	}
	if mp.ProgrammableConfig != nil {
		r.set(KeyProgrammableConfig, *mp.ProgrammableConfig)
	}
	if len(mp.Creators) > 0 {
		unverified := make([]ledger.Creator, len(mp.Creators))
		for i, c := range mp.Creators {
			unverified[i] = ledger.Creator{Address: c.Address, Verified: false, Share: c.Share}
		}
		r.set(KeyCreators, mustJSON(unverified))
	}
	return r
}

// ToMetaplex reverse-normalizes a Record into a Metaplex DataV2-shaped
// account. Fields the Record does not carry are left absent (nil), which is
// the "null out, don't merge" behavior SyncMetadataToSplToken requires.
func ToMetaplex(r Record) (ledger.MetaplexMetadata, error) {
	out := ledger.MetaplexMetadata{
		UpdateAuthority: r.UpdateAuthority,
		Mint:            r.Mint,
		Name:            r.Name,
		Symbol:          r.Symbol,
		URI:             r.URI,
	}

	if v, ok := r.AdditionalFields[KeySellerFeeBasisPoints]; ok {
		n, err := parseUint(v)
		if err != nil {
			return out, err
		}
		out.SellerFeeBasisPoints = uint16(n)
	}
	if v, ok := r.AdditionalFields[KeyCreators]; ok {
		var creators []ledger.Creator
		if err := json.Unmarshal([]byte(v), &creators); err != nil {
			return out, err
		}
		out.Creators = creators
	}
	if v, ok := r.AdditionalFields[KeyCollection]; ok {
		var collection ledger.MetaplexCollection
		if err := json.Unmarshal([]byte(v), &collection); err != nil {
			return out, err
		}
		out.Collection = &collection
	}
	if v, ok := r.AdditionalFields[KeyUses]; ok {
		var uses ledger.MetaplexUses
		if err := json.Unmarshal([]byte(v), &uses); err != nil {
			return out, err
		}
		out.Uses = &uses
	}
	// primary_sale_happened, is_mutable, edition_nonce, token_standard,
	// collection_details, and programmable_config are all cleared on
	// reverse normalization, per spec: "all other fields are cleared."
	return out, nil
}

func itoa(v uint64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func boolToJSON(b bool) string {
	data, _ := json.Marshal(b)
	return string(data)
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func parseUint(s string) (uint64, error) {
	var n uint64
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return 0, err
	}
	return n, nil
}
