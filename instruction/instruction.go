// Package instruction implements the tagged-union wire codec described in
// the program's instruction layout: one discriminator byte followed by a
// fixed, unpadded, unversioned little-endian payload.
package instruction

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// Tag is the wire discriminator. Ordinals are part of the wire contract.
type Tag uint8

const (
	TagCreateMint Tag = iota
	TagWrap
	TagUnwrap
	TagCloseStuckEscrow
	TagSyncMetadataToToken2022
	TagSyncMetadataToSplToken
	TagSetCanonicalPointer
)

// Instruction is implemented by every variant below.
type Instruction interface {
	Tag() Tag
}

// CreateMint carries the idempotent flag; any payload byte other than 0/1 is
// invalid instruction data.
type CreateMint struct {
	Idempotent bool
}

func (CreateMint) Tag() Tag { return TagCreateMint }

// Wrap carries the amount of unwrapped units to move into escrow.
type Wrap struct {
	Amount uint64
}

func (Wrap) Tag() Tag { return TagWrap }

// Unwrap carries the amount of wrapped units to burn and release.
type Unwrap struct {
	Amount uint64
}

func (Unwrap) Tag() Tag { return TagUnwrap }

// CloseStuckEscrow has no payload; the escrow and mint accounts carry
// everything the handler needs.
type CloseStuckEscrow struct{}

func (CloseStuckEscrow) Tag() Tag { return TagCloseStuckEscrow }

// SyncMetadataToToken2022 has no payload; the metadata source is inferred
// from the accounts list.
type SyncMetadataToToken2022 struct{}

func (SyncMetadataToToken2022) Tag() Tag { return TagSyncMetadataToToken2022 }

// SyncMetadataToSplToken has no payload.
type SyncMetadataToSplToken struct{}

func (SyncMetadataToSplToken) Tag() Tag { return TagSyncMetadataToSplToken }

// SetCanonicalPointer carries the endorsed deployment's program id as
// trailing payload data rather than an extra account: the target is data,
// not an address to validate against a derivation, so it belongs in the
// instruction payload like Wrap/Unwrap's amount.
type SetCanonicalPointer struct {
	TargetProgramID solana.PublicKey
}

func (SetCanonicalPointer) Tag() Tag { return TagSetCanonicalPointer }

// Pack serializes an Instruction to its wire form: one tag byte followed by
// the little-endian payload.
func Pack(ix Instruction) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := buf.WriteByte(byte(ix.Tag())); err != nil {
		return nil, err
	}
	enc := bin.NewBinEncoder(buf)

	switch v := ix.(type) {
	case CreateMint:
		var flag byte
		if v.Idempotent {
			flag = 1
		}
		if err := buf.WriteByte(flag); err != nil {
			return nil, err
		}
	case Wrap:
		if err := enc.Encode(v.Amount); err != nil {
			return nil, err
		}
	case Unwrap:
		if err := enc.Encode(v.Amount); err != nil {
			return nil, err
		}
	case CloseStuckEscrow:
	case SyncMetadataToToken2022:
	case SyncMetadataToSplToken:
	case SetCanonicalPointer:
		if _, err := buf.Write(v.TargetProgramID.Bytes()); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("instruction: unknown variant %T", ix)
	}
	return buf.Bytes(), nil
}

// Unpack decodes raw instruction data back into its typed variant. It fails
// on any trailing-length mismatch: every byte of data must be consumed.
func Unpack(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("instruction: empty instruction data")
	}
	tag := Tag(data[0])
	rest := data[1:]

	switch tag {
	case TagCreateMint:
		if len(rest) != 1 {
			return nil, fmt.Errorf("instruction: CreateMint expects 1 payload byte, got %d", len(rest))
		}
		switch rest[0] {
		case 0:
			return CreateMint{Idempotent: false}, nil
		case 1:
			return CreateMint{Idempotent: true}, nil
		default:
			return nil, fmt.Errorf("instruction: CreateMint idempotent flag must be 0 or 1, got %d", rest[0])
		}
	case TagWrap:
		amount, err := decodeU64(rest)
		if err != nil {
			return nil, fmt.Errorf("instruction: Wrap: %w", err)
		}
		return Wrap{Amount: amount}, nil
	case TagUnwrap:
		amount, err := decodeU64(rest)
		if err != nil {
			return nil, fmt.Errorf("instruction: Unwrap: %w", err)
		}
		return Unwrap{Amount: amount}, nil
	case TagCloseStuckEscrow:
		if len(rest) != 0 {
			return nil, fmt.Errorf("instruction: CloseStuckEscrow expects no payload, got %d bytes", len(rest))
		}
		return CloseStuckEscrow{}, nil
	case TagSyncMetadataToToken2022:
		if len(rest) != 0 {
			return nil, fmt.Errorf("instruction: SyncMetadataToToken2022 expects no payload, got %d bytes", len(rest))
		}
		return SyncMetadataToToken2022{}, nil
	case TagSyncMetadataToSplToken:
		if len(rest) != 0 {
			return nil, fmt.Errorf("instruction: SyncMetadataToSplToken expects no payload, got %d bytes", len(rest))
		}
		return SyncMetadataToSplToken{}, nil
	case TagSetCanonicalPointer:
		if len(rest) != 32 {
			return nil, fmt.Errorf("instruction: SetCanonicalPointer expects a 32-byte program id, got %d bytes", len(rest))
		}
		return SetCanonicalPointer{TargetProgramID: solana.PublicKeyFromBytes(rest)}, nil
	default:
		return nil, fmt.Errorf("instruction: unknown tag %d", tag)
	}
}

func decodeU64(rest []byte) (uint64, error) {
	if len(rest) != 8 {
		return 0, fmt.Errorf("expected 8 payload bytes, got %d", len(rest))
	}
	dec := bin.NewBinDecoder(rest)
	var v uint64
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	return v, nil
}
