// Package customizer implements the pluggable mint-customizer strategy:
// what extensions to pre-initialize on a wrapped mint, what to initialize
// after the base mint exists, and what decimals/freeze-authority to apply.
// Selection is deployment-time (a fixed Variant baked into a Program, not a
// runtime choice), so this is a small variant table rather than a registry.
package customizer

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/ledger"
)

// Variant names one of the reference mint-customizer strategies.
type Variant uint8

const (
	NoExtensions Variant = iota
	ConfidentialTransfersOnly
	Default
	Compliance
)

func (v Variant) String() string {
	switch v {
	case NoExtensions:
		return "NoExtensions"
	case ConfidentialTransfersOnly:
		return "ConfidentialTransfersOnly"
	case Default:
		return "Default"
	case Compliance:
		return "Compliance"
	default:
		return "Unknown"
	}
}

// Approximate Token-2022 extension byte costs. This simulation never lays
// out raw TLV bytes on the wire, so these only need to be in the right
// order of magnitude to produce realistic rent-exemption figures for
// RequireRentExempt.
const (
	baseMintSize              = 82
	confidentialTransferBytes = 97
	metadataPointerBytes      = 64
	tokenMetadataBaseBytes    = 140
	permanentDelegateBytes    = 32
)

// Customizer is the strategy interface CreateMint drives. Every method is
// pure aside from the ledger mutations PreInitialize/PostInitialize issue,
// which model the extension-setup CPIs the real program would make.
type Customizer interface {
	Variant() Variant
	// TotalSpace is the byte size CreateMint allocates for the wrapped
	// mint before any initialization runs.
	TotalSpace() uint64
	// PreInitialize runs before the base mint is initialized: extensions
	// that must be configured while the mint is still "empty" (e.g.
	// confidential-transfer config, a metadata pointer).
	PreInitialize(l *ledger.Ledger, mint, authority solana.PublicKey) error
	// PostInitialize runs after InitializeMint2: variable-length
	// extensions (token-metadata) that need the base mint to already
	// exist, signed under the mint authority's seeds where required.
	PostInitialize(l *ledger.Ledger, mint, authority solana.PublicKey, signers map[solana.PublicKey]bool) error
	// Decimals lets the customizer override the decimals copied from the
	// unwrapped mint. Every reference variant passes sourceDecimals
	// through unchanged.
	Decimals(sourceDecimals uint8) uint8
	// FreezeAuthority lets the customizer override the freeze authority
	// copied from the unwrapped mint at creation time.
	FreezeAuthority(sourceFreezeAuthority *solana.PublicKey) *solana.PublicKey
}

// For constructs the Customizer for a given Variant.
func For(v Variant) (Customizer, error) {
	switch v {
	case NoExtensions:
		return noExtensions{}, nil
	case ConfidentialTransfersOnly:
		return confidentialTransfersOnly{}, nil
	case Default:
		return defaultVariant{}, nil
	case Compliance:
		return compliance{}, nil
	default:
		return nil, errUnknownVariant(v)
	}
}

type errUnknownVariant Variant

func (e errUnknownVariant) Error() string {
	return "customizer: unknown variant " + Variant(e).String()
}

// --- NoExtensions -----------------------------------------------------------

// noExtensions adds nothing beyond the base SPL-Token-2022 mint layout.
type noExtensions struct{}

func (noExtensions) Variant() Variant     { return NoExtensions }
func (noExtensions) TotalSpace() uint64   { return baseMintSize }
func (noExtensions) Decimals(d uint8) uint8 { return d }
func (noExtensions) FreezeAuthority(f *solana.PublicKey) *solana.PublicKey { return f }

func (noExtensions) PreInitialize(*ledger.Ledger, solana.PublicKey, solana.PublicKey) error {
	return nil
}

func (noExtensions) PostInitialize(*ledger.Ledger, solana.PublicKey, solana.PublicKey, map[solana.PublicKey]bool) error {
	return nil
}

// --- ConfidentialTransfersOnly ----------------------------------------------

// confidentialTransfersOnly enables confidential transfers with no auditor
// (non-auditable) and no further configuration (immutable thereafter: this
// program never issues a follow-up reconfigure CPI for it).
type confidentialTransfersOnly struct{}

func (confidentialTransfersOnly) Variant() Variant { return ConfidentialTransfersOnly }
func (confidentialTransfersOnly) TotalSpace() uint64 {
	return baseMintSize + confidentialTransferBytes
}
func (confidentialTransfersOnly) Decimals(d uint8) uint8 { return d }
func (confidentialTransfersOnly) FreezeAuthority(f *solana.PublicKey) *solana.PublicKey { return f }

func (confidentialTransfersOnly) PreInitialize(l *ledger.Ledger, mint, _ solana.PublicKey) error {
	return l.InitializeConfidentialTransferMint(mint, nil)
}

func (confidentialTransfersOnly) PostInitialize(*ledger.Ledger, solana.PublicKey, solana.PublicKey, map[solana.PublicKey]bool) error {
	return nil
}

// --- Default ----------------------------------------------------------------

// defaultVariant is confidential-transfer (non-auditable) plus a
// self-pointing metadata pointer plus an empty token-metadata record, ready
// for the first SyncMetadataToToken2022 to fill in.
type defaultVariant struct{}

func (defaultVariant) Variant() Variant { return Default }
func (defaultVariant) TotalSpace() uint64 {
	return baseMintSize + confidentialTransferBytes + metadataPointerBytes + tokenMetadataBaseBytes
}
func (defaultVariant) Decimals(d uint8) uint8 { return d }
func (defaultVariant) FreezeAuthority(f *solana.PublicKey) *solana.PublicKey { return f }

func (defaultVariant) PreInitialize(l *ledger.Ledger, mint, _ solana.PublicKey) error {
	if err := l.InitializeConfidentialTransferMint(mint, nil); err != nil {
		return err
	}
	return l.InitializeMetadataPointer(mint, nil, &mint)
}

func (defaultVariant) PostInitialize(l *ledger.Ledger, mint, authority solana.PublicKey, signers map[solana.PublicKey]bool) error {
	return l.TokenMetadataInitialize(mint, authority, "", "", "", signers)
}

// --- Compliance --------------------------------------------------------------

// compliance retains the unwrapped mint's freeze authority, adds a
// permanent delegate (the mint authority itself), and enables
// confidential-transfer with the mint authority as auditor.
type compliance struct{}

func (compliance) Variant() Variant { return Compliance }
func (compliance) TotalSpace() uint64 {
	return baseMintSize + confidentialTransferBytes + permanentDelegateBytes
}
func (compliance) Decimals(d uint8) uint8 { return d }
func (compliance) FreezeAuthority(f *solana.PublicKey) *solana.PublicKey { return f }

func (compliance) PreInitialize(l *ledger.Ledger, mint, authority solana.PublicKey) error {
	if err := l.InitializeConfidentialTransferMint(mint, &authority); err != nil {
		return err
	}
	return l.InitializePermanentDelegate(mint, authority)
}

func (compliance) PostInitialize(*ledger.Ledger, solana.PublicKey, solana.PublicKey, map[solana.PublicKey]bool) error {
	return nil
}
