// Package state defines the program's on-disk records. Both are transparent
// 32-byte POD layouts: no version byte, no length prefix, readable directly.
package state

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// BackpointerLen is the fixed on-disk size of a Backpointer record.
const BackpointerLen = 32

// CanonicalDeploymentPointerLen is the fixed on-disk size of a
// CanonicalDeploymentPointer record.
const CanonicalDeploymentPointerLen = 32

// Backpointer names the unwrapped mint a wrapped mint wraps. Written once by
// CreateMint; immutable thereafter.
type Backpointer struct {
	UnwrappedMint solana.PublicKey
}

func (b Backpointer) Marshal() []byte {
	out := make([]byte, BackpointerLen)
	copy(out, b.UnwrappedMint.Bytes())
	return out
}

func UnmarshalBackpointer(data []byte) (Backpointer, error) {
	if len(data) != BackpointerLen {
		return Backpointer{}, fmt.Errorf("state: Backpointer expects %d bytes, got %d", BackpointerLen, len(data))
	}
	return Backpointer{UnwrappedMint: solana.PublicKeyFromBytes(data)}, nil
}

// CanonicalDeploymentPointer records which deployment of this program an
// unwrapped mint's own authority endorses as canonical.
type CanonicalDeploymentPointer struct {
	ProgramID solana.PublicKey
}

func (c CanonicalDeploymentPointer) Marshal() []byte {
	out := make([]byte, CanonicalDeploymentPointerLen)
	copy(out, c.ProgramID.Bytes())
	return out
}

func UnmarshalCanonicalDeploymentPointer(data []byte) (CanonicalDeploymentPointer, error) {
	if len(data) != CanonicalDeploymentPointerLen {
		return CanonicalDeploymentPointer{}, fmt.Errorf("state: CanonicalDeploymentPointer expects %d bytes, got %d", CanonicalDeploymentPointerLen, len(data))
	}
	return CanonicalDeploymentPointer{ProgramID: solana.PublicKeyFromBytes(data)}, nil
}
