// Package addr computes the deterministic program-derived addresses this
// program operates on. Every function here is pure: no RPC, no I/O, just
// seed construction and PDA math, so it can be re-derived identically by
// any handler and by every test in this module.
package addr

import (
	"errors"

	solana "github.com/gagliardetto/solana-go"
	atapkg "github.com/gagliardetto/solana-go/programs/associated-token-account"
)

// ErrDerivationFailed wraps the underlying PDA search failure (exhausted
// bump range), which in practice never happens for well-formed seeds.
var ErrDerivationFailed = errors.New("addr: unable to find a valid program address")

// Seeds bundles a seed list together with the bump that makes it a valid
// off-curve address, in the two shapes handlers need: the unsigned shape
// (for comparison/lookup) and the signed shape (bump appended, for CPI
// signing). Re-derive this at the top of each handler; never cache it.
type Seeds struct {
	Unsigned [][]byte
	Signed   [][]byte
	Bump     uint8
}

func withBump(seeds [][]byte, bump uint8) Seeds {
	signed := make([][]byte, len(seeds)+1)
	copy(signed, seeds)
	signed[len(seeds)] = []byte{bump}
	return Seeds{Unsigned: seeds, Signed: signed, Bump: bump}
}

func derive(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, Seeds, error) {
	address, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, Seeds{}, ErrDerivationFailed
	}
	return address, withBump(seeds, bump), nil
}

// WrappedMint derives W = PDA("mint", U, P_w) under programID.
func WrappedMint(unwrappedMint, wrappedTokenProgram, programID solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		[]byte("mint"),
		unwrappedMint.Bytes(),
		wrappedTokenProgram.Bytes(),
	}
	return derive(seeds, programID)
}

// MintAuthority derives A = PDA("authority", W) under programID.
func MintAuthority(wrappedMint, programID solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		[]byte("authority"),
		wrappedMint.Bytes(),
	}
	return derive(seeds, programID)
}

// Backpointer derives B = PDA("backpointer", W) under programID.
func Backpointer(wrappedMint, programID solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		[]byte("backpointer"),
		wrappedMint.Bytes(),
	}
	return derive(seeds, programID)
}

// CanonicalPointer derives C = PDA("canonical_pointer", U) under programID.
func CanonicalPointer(unwrappedMint, programID solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		[]byte("canonical_pointer"),
		unwrappedMint.Bytes(),
	}
	return derive(seeds, programID)
}

// MetaplexProgramID is the real mainnet/devnet Metaplex token-metadata
// program id (see https://github.com/metaplex-foundation/mpl-token-metadata),
// the same constant an off-chain client resolves for reading
// Metaplex PDAs.
var MetaplexProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// MetaplexMetadataPDA derives the Metaplex metadata PDA for mint: seeds
// ["metadata", MetaplexProgramID, mint] under MetaplexProgramID.
func MetaplexMetadataPDA(mint solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		[]byte("metadata"),
		MetaplexProgramID.Bytes(),
		mint.Bytes(),
	}
	return derive(seeds, MetaplexProgramID)
}

// Escrow derives E, the associated-token-account of authority under mint's
// owning token program. This follows the standard ATA derivation (not the
// program's own seed scheme): seeds = [authority, tokenProgram, mint] under
// the associated-token-account program.
func Escrow(authority, mint, tokenProgram solana.PublicKey) (solana.PublicKey, Seeds, error) {
	seeds := [][]byte{
		authority.Bytes(),
		tokenProgram.Bytes(),
		mint.Bytes(),
	}
	return derive(seeds, atapkg.ProgramID)
}
