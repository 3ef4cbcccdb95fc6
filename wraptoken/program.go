// Package wraptoken implements the token-wrapping program's instruction
// handlers: CreateMint, Wrap, Unwrap, CloseStuckEscrow,
// SyncMetadataToToken2022, SyncMetadataToSplToken, and SetCanonicalPointer.
// Each handler re-derives its authoritative PDAs from first principles,
// validates every passed account against that derivation, then issues the
// matching sequence of CPIs against the ledger package's simulated token,
// system, and Metaplex programs.
package wraptoken

import (
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"tokenwrap.dev/program/customizer"
	"tokenwrap.dev/program/internal/logging"
)

// Program bundles the identifiers and deployment-time configuration every
// handler needs: this program's own id (for PDA derivation), the two token
// program ids it bridges between, and the mint customizer this deployment
// was built with.
type Program struct {
	ID          solana.PublicKey
	T1ProgramID solana.PublicKey
	T2ProgramID solana.PublicKey
	Customizer  customizer.Customizer
	Logger      *zap.Logger
}

// New constructs a Program. A nil logger is replaced with a no-op logger so
// handlers never need a nil check.
func New(id, t1Program, t2Program solana.PublicKey, c customizer.Customizer, logger *zap.Logger) *Program {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Program{
		ID:          id,
		T1ProgramID: t1Program,
		T2ProgramID: t2Program,
		Customizer:  c,
		Logger:      logger,
	}
}

func (p *Program) log(msg string, fields ...zap.Field) {
	p.Logger.Info(msg, append([]zap.Field{logging.Pubkey("program_id", p.ID)}, fields...)...)
}
