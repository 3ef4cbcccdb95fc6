package metadata

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/addr"
	"tokenwrap.dev/program/ledger"
	"tokenwrap.dev/program/twerr"
)

func setupT2Mint(t *testing.T, l *ledger.Ledger, t2Program solana.PublicKey) solana.PublicKey {
	t.Helper()
	mint := solana.NewWallet().PublicKey()
	if err := l.InitializeMint2(mint, t2Program, 9, solana.NewWallet().PublicKey(), nil); err != nil {
		t.Fatalf("init mint: %v", err)
	}
	return mint
}

func TestResolveSelfPointingToken2022(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	m, _ := l.Mint(mint)
	if err := l.InitializeMetadataPointer(mint, nil, &mint); err != nil {
		t.Fatalf("init pointer: %v", err)
	}
	updateAuth := solana.NewWallet().PublicKey()
	if err := l.TokenMetadataInitialize(mint, updateAuth, "Alpha", "A", "u", map[solana.PublicKey]bool{*m.MintAuthority: true}); err != nil {
		t.Fatalf("init token metadata: %v", err)
	}

	viewing := solana.NewWallet().PublicKey()
	rec, err := Resolve(l, mint, t1, t2, nil, nil, viewing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rec.Name != "Alpha" || rec.Symbol != "A" || rec.URI != "u" || !rec.Mint.Equals(viewing) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestResolveUnsetPointerFails(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	if err := l.InitializeMetadataPointer(mint, nil, nil); err != nil {
		t.Fatalf("init pointer: %v", err)
	}
	_, err := Resolve(l, mint, t1, t2, nil, nil, solana.NewWallet().PublicKey())
	twerrErr, ok := err.(*twerr.Error)
	if !ok || twerrErr.Kind != twerr.MetadataPointerUnset {
		t.Fatalf("expected MetadataPointerUnset, got %v", err)
	}
}

func TestResolveMissingPointerExtensionFails(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	_, err := Resolve(l, mint, t1, t2, nil, nil, solana.NewWallet().PublicKey())
	twerrErr, ok := err.(*twerr.Error)
	if !ok || twerrErr.Kind != twerr.MetadataPointerMissing {
		t.Fatalf("expected MetadataPointerMissing, got %v", err)
	}
}

func TestResolvePointerToAnotherT2MintFails(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	other := setupT2Mint(t, l, t2)
	if err := l.InitializeMetadataPointer(mint, nil, &other); err != nil {
		t.Fatalf("init pointer: %v", err)
	}
	_, err := Resolve(l, mint, t1, t2, &other, nil, solana.NewWallet().PublicKey())
	if err != ErrInvalidAccountData {
		t.Fatalf("expected ErrInvalidAccountData, got %v", err)
	}
}

func TestResolveThirdPartyProgramReturnsNoData(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	thirdParty := solana.NewWallet().PublicKey()
	target := solana.NewWallet().PublicKey()
	l.Assign(target, thirdParty)
	if err := l.InitializeMetadataPointer(mint, nil, &target); err != nil {
		t.Fatalf("init pointer: %v", err)
	}
	l.RegisterExternalProgram(thirdParty, func(*ledger.Ledger, solana.PublicKey) ([]byte, error) {
		return nil, nil
	})

	_, err := Resolve(l, mint, t1, t2, &target, &thirdParty, solana.NewWallet().PublicKey())
	twerrErr, ok := err.(*twerr.Error)
	if !ok || twerrErr.Kind != twerr.ExternalProgramReturnedNoData {
		t.Fatalf("expected ExternalProgramReturnedNoData, got %v", err)
	}
}

func TestResolveThirdPartyProgramSucceeds(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := setupT2Mint(t, l, t2)
	thirdParty := solana.NewWallet().PublicKey()
	target := solana.NewWallet().PublicKey()
	l.Assign(target, thirdParty)
	if err := l.InitializeMetadataPointer(mint, nil, &target); err != nil {
		t.Fatalf("init pointer: %v", err)
	}

	viewing := solana.NewWallet().PublicKey()
	want := Record{UpdateAuthority: solana.NewWallet().PublicKey(), Name: "Beta", Symbol: "B", URI: "uri"}
	want.set("k", "v")
	l.RegisterExternalProgram(thirdParty, func(*ledger.Ledger, solana.PublicKey) ([]byte, error) {
		return EncodeTokenMetadata(want, target), nil
	})

	rec, err := Resolve(l, mint, t1, t2, &target, &thirdParty, viewing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rec.Name != "Beta" || rec.Symbol != "B" || rec.AdditionalFields["k"] != "v" || !rec.Mint.Equals(viewing) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestResolveT1RequiresMatchingMetaplexPDA(t *testing.T) {
	l := ledger.New()
	t1, t2 := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	l.InitializeMint2(mint, t1, 9, solana.NewWallet().PublicKey(), nil)

	wrong := solana.NewWallet().PublicKey()
	_, err := Resolve(l, mint, t1, t2, &wrong, nil, solana.NewWallet().PublicKey())
	twerrErr, ok := err.(*twerr.Error)
	if !ok || twerrErr.Kind != twerr.MetaplexMetadataMismatch {
		t.Fatalf("expected MetaplexMetadataMismatch, got %v", err)
	}

	pda, _, _ := addr.MetaplexMetadataPDA(mint)
	authority := solana.NewWallet().PublicKey()
	if err := l.CreateMetadataAccountV3(pda, mint, authority, ledger.MetaplexMetadata{Name: "Gamma", Symbol: "G", URI: "u"}, map[solana.PublicKey]bool{authority: true}); err != nil {
		t.Fatalf("create metaplex account: %v", err)
	}
	rec, err := Resolve(l, mint, t1, t2, &pda, nil, mint)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rec.Name != "Gamma" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestToMetaplexNullsAbsentFields(t *testing.T) {
	r := Record{Name: "Delta", Symbol: "D", URI: "u"}
	out, err := ToMetaplex(r)
	if err != nil {
		t.Fatalf("to metaplex: %v", err)
	}
	if out.Collection != nil || out.Uses != nil || len(out.Creators) != 0 {
		t.Fatalf("expected absent optional fields to be nulled, got %+v", out)
	}
}
