// Package twerr holds the program's own numeric error taxonomy. Generic
// runtime failures (bad owner, insufficient funds, missing signature, short
// account list) are NOT represented here; they are surfaced unchanged from
// the ledger package as plain sentinel errors, per the program's error
// handling design.
package twerr

import "fmt"

// Kind is the stable ordinal identifying one of this program's own error
// conditions. The ordinals are part of the wire contract and must never be
// renumbered.
type Kind uint8

const (
	WrappedMintMismatch Kind = iota
	BackpointerMismatch
	ZeroWrapAmount
	MintAuthorityMismatch
	EscrowOwnerMismatch
	InvalidWrappedMintOwner
	InvalidBackpointerOwner
	EscrowMismatch
	EscrowInGoodState
	MetaplexMetadataMismatch
	MetadataPointerMissing
	MetadataPointerUnset
	MetadataPointerMismatch
	UnwrappedMintHasNoMetadata
	ExternalProgramReturnedNoData
	NoSyncingToToken2022
)

var names = map[Kind]string{
	WrappedMintMismatch:           "WrappedMintMismatch",
	BackpointerMismatch:           "BackpointerMismatch",
	ZeroWrapAmount:                "ZeroWrapAmount",
	MintAuthorityMismatch:         "MintAuthorityMismatch",
	EscrowOwnerMismatch:           "EscrowOwnerMismatch",
	InvalidWrappedMintOwner:       "InvalidWrappedMintOwner",
	InvalidBackpointerOwner:       "InvalidBackpointerOwner",
	EscrowMismatch:                "EscrowMismatch",
	EscrowInGoodState:             "EscrowInGoodState",
	MetaplexMetadataMismatch:      "MetaplexMetadataMismatch",
	MetadataPointerMissing:        "MetadataPointerMissing",
	MetadataPointerUnset:          "MetadataPointerUnset",
	MetadataPointerMismatch:       "MetadataPointerMismatch",
	UnwrappedMintHasNoMetadata:    "UnwrappedMintHasNoMetadata",
	ExternalProgramReturnedNoData: "ExternalProgramReturnedNoData",
	NoSyncingToToken2022:          "NoSyncingToToken2022",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is the concrete error type every handler returns for a program-level
// (as opposed to generic runtime) failure.
type Error struct {
	Kind   Kind
	Detail string
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is allows errors.Is(err, twerr.New(SomeKind, "")) style matching on kind
// alone, ignoring Detail.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
