package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"

	"tokenwrap.dev/program/instruction"
	"tokenwrap.dev/program/ledger"
)

// Dispatch decodes raw instruction data (see package instruction) and
// routes it to the matching handler, translating the positional account
// list into that handler's named-field Accounts struct. Account ordering
// is part of the wire contract: this is the one place that
// translation happens, so individual handlers can stay readable.
func (p *Program) Dispatch(l *ledger.Ledger, data []byte, accounts []solana.PublicKey, signers map[solana.PublicKey]bool) error {
	ix, err := instruction.Unpack(data)
	if err != nil {
		return err
	}

	switch v := ix.(type) {
	case instruction.CreateMint:
		const n = 4
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		return p.CreateMint(l, CreateMintAccounts{
			WrappedMint: accounts[0],
			Backpointer: accounts[1],
			UnwrappedMint: accounts[2],
			WrappedTokenProgram: accounts[3],
		}, v.Idempotent)

	case instruction.Wrap:
		const n = 9
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		return p.Wrap(l, WrapAccounts{
			RecipientWrappedAccount: accounts[0],
			WrappedMint: accounts[1],
			MintAuthority: accounts[2],
			UnwrappedTokenProgram: accounts[3],
			WrappedTokenProgram: accounts[4],
			SourceUnwrappedAccount: accounts[5],
			UnwrappedMint: accounts[6],
			Escrow: accounts[7],
			TransferAuthority: accounts[8],
			TransferHookAccounts: accounts[n:],
		}, v.Amount, signers)

	case instruction.Unwrap:
		const n = 9
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		return p.Unwrap(l, UnwrapAccounts{
			Escrow: accounts[0],
			RecipientUnwrappedAccount: accounts[1],
			MintAuthority: accounts[2],
			UnwrappedMint: accounts[3],
			UnwrappedTokenProgram: accounts[4],
			WrappedTokenProgram: accounts[5],
			WrappedSourceAccount: accounts[6],
			WrappedMint: accounts[7],
			TransferAuthority: accounts[8],
			TransferHookAccounts: accounts[n:],
		}, v.Amount, signers)

	case instruction.CloseStuckEscrow:
		const n = 6
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		return p.CloseStuckEscrow(l, CloseStuckEscrowAccounts{
			UnwrappedMint: accounts[0],
			WrappedTokenProgram: accounts[1],
			WrappedMint: accounts[2],
			MintAuthority: accounts[3],
			Escrow: accounts[4],
			Destination: accounts[5],
		})

	case instruction.SyncMetadataToToken2022:
		const n = 3
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		accs := SyncToToken2022Accounts{
			WrappedMint: accounts[0],
			MintAuthority: accounts[1],
			UnwrappedMint: accounts[2],
		}
		if len(accounts) > n {
			accs.SourceMetadata = &accounts[n]
		}
		if len(accounts) > n+1 {
			accs.OwnerProgram = &accounts[n+1]
		}
		return p.SyncMetadataToToken2022(l, accs)

	case instruction.SyncMetadataToSplToken:
		const n = 5
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		accs := SyncToSplTokenAccounts{
			MetaplexPDA: accounts[0],
			MintAuthority: accounts[1],
			WrappedMint: accounts[2],
			UnwrappedMint: accounts[3],
			MetaplexProgram: accounts[4],
		}
		if len(accounts) > n {
			accs.SourceMetadata = &accounts[n]
		}
		if len(accounts) > n+1 {
			accs.OwnerProgram = &accounts[n+1]
		}
		return p.SyncMetadataToSplToken(l, accs)

	case instruction.SetCanonicalPointer:
		const n = 2
		if len(accounts) < n {
			return ledger.ErrNotEnoughAccountKeys
		}
		return p.SetCanonicalPointer(l, SetCanonicalPointerAccounts{
			UnwrappedMint: accounts[0],
			CanonicalPointer: accounts[1],
		}, v.TargetProgramID, signers)

	default:
		return instructionUnknownVariant{}
	}
}

type instructionUnknownVariant struct{}

func (instructionUnknownVariant) Error() string { return "wraptoken: unknown instruction variant" }
