package customizer

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/ledger"
)

func TestForConstructsEveryReferenceVariant(t *testing.T) {
	for _, v := range []Variant{NoExtensions, ConfidentialTransfersOnly, Default, Compliance} {
		c, err := For(v)
		if err != nil {
			t.Fatalf("For(%s): %v", v, err)
		}
		if c.Variant() != v {
			t.Fatalf("variant mismatch: got %s want %s", c.Variant(), v)
		}
		if c.TotalSpace() == 0 {
			t.Fatalf("%s: TotalSpace must be positive", v)
		}
	}
}

func TestForRejectsUnknownVariant(t *testing.T) {
	if _, err := For(Variant(99)); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestTotalSpaceGrowsWithExtensionCount(t *testing.T) {
	none, _ := For(NoExtensions)
	ct, _ := For(ConfidentialTransfersOnly)
	def, _ := For(Default)
	if ct.TotalSpace() <= none.TotalSpace() {
		t.Fatalf("ConfidentialTransfersOnly should need more space than NoExtensions")
	}
	if def.TotalSpace() <= ct.TotalSpace() {
		t.Fatalf("Default should need more space than ConfidentialTransfersOnly")
	}
}

func TestDefaultVariantWiresSelfPointerAndEmptyMetadata(t *testing.T) {
	l := ledger.New()
	mint := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	if err := l.AllocateMint(mint, tokenProgram); err != nil {
		t.Fatalf("allocate mint: %v", err)
	}

	c, _ := For(Default)
	if err := c.PreInitialize(l, mint, authority); err != nil {
		t.Fatalf("pre-initialize: %v", err)
	}
	m, _ := l.Mint(mint)
	if !m.MetadataPointerSet || !m.MetadataPointer.Equals(mint) {
		t.Fatalf("expected mint to self-point, got %+v", m.MetadataPointer)
	}

	if err := l.InitializeMint2(mint, tokenProgram, 9, authority, nil); err != nil {
		t.Fatalf("initialize mint2: %v", err)
	}
	signers := map[solana.PublicKey]bool{authority: true}
	if err := c.PostInitialize(l, mint, authority, signers); err != nil {
		t.Fatalf("post-initialize: %v", err)
	}
	m, _ = l.Mint(mint)
	if m.TokenMetadata == nil || m.TokenMetadata.Name != "" {
		t.Fatalf("expected empty self-hosted token-metadata, got %+v", m.TokenMetadata)
	}
}

func TestComplianceVariantRetainsFreezeAuthorityAndAddsDelegate(t *testing.T) {
	l := ledger.New()
	mint := solana.NewWallet().PublicKey()
	tokenProgram := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	if err := l.AllocateMint(mint, tokenProgram); err != nil {
		t.Fatalf("allocate mint: %v", err)
	}

	c, _ := For(Compliance)
	if err := c.PreInitialize(l, mint, authority); err != nil {
		t.Fatalf("pre-initialize: %v", err)
	}
	m, _ := l.Mint(mint)
	if m.PermanentDelegate == nil || !m.PermanentDelegate.Equals(authority) {
		t.Fatalf("expected permanent delegate = authority, got %v", m.PermanentDelegate)
	}
	if m.ConfidentialAuditor == nil || !m.ConfidentialAuditor.Equals(authority) {
		t.Fatalf("expected confidential auditor = authority, got %v", m.ConfidentialAuditor)
	}

	sourceFreeze := solana.NewWallet().PublicKey()
	if got := c.FreezeAuthority(&sourceFreeze); got == nil || !got.Equals(sourceFreeze) {
		t.Fatalf("compliance must retain the source freeze authority unchanged")
	}
}
